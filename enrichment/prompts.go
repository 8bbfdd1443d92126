package enrichment

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/now-playing/spotify"
)

const maxArticleChars = 3000

func songDetails(core *TrackCore) string {
	return fmt.Sprintf("- Title: %q\n- Artist(s): %s\n- Album: %q\n- Release Date: %s",
		core.Title, strings.Join(core.Artists, ", "), core.Album, core.ReleaseDate)
}

func audioDetails(f *spotify.AudioFeatures) string {
	if f == nil || f.TempoBPM == 0 {
		return ""
	}
	return fmt.Sprintf("\nAudio features: %.0f BPM, %s %s, energy %.0f%%, danceability %.0f%%",
		f.TempoBPM, f.Key, f.Mode, f.Energy*100, f.Danceability*100)
}

func reviewPrompt(s Snapshot) string {
	return `You are a knowledgeable music journalist. Describe this song:

` + songDetails(s.TrackCore) + audioDetails(s.AudioFeatures) + `

Return ONLY a JSON object with these keys:
{"writers": [names], "producer": "name or empty", "writer_background": "one sentence",
 "writer_source": "known" if you are certain of the credits, "inferred" if likely, "unknown" otherwise,
 "themes": [up to 3 short themes], "meaning": "1-2 sentences", "cultural_context": "1-2 sentences",
 "verdict": "one sentence", "rating": number from 1 to 10, "strengths": [up to 3], "weaknesses": [up to 3],
 "sources_note": "one sentence on how confident these credits are"}
Be factual and concrete. Do not quote lyrics.`
}

func themePrompt(s Snapshot) string {
	return `Analyze the emotional themes and impact of this song:

` + songDetails(s.TrackCore) + `

Describe the most emotionally powerful themes and messages in this song without quoting lyrics. Focus on:
- The emotional core and central themes
- What makes this song impactful
- The mood and atmosphere it creates

Provide a 2-3 sentence analysis of the song's emotional weight and thematic content.`
}

func bandPrompt(artist string) string {
	return fmt.Sprintf(`Provide factual information about the band/artist: %s

Return in this exact format:
Members: [list the main band members, or "Solo artist" if solo]
Formed: [year formed]
Origin: [city, country]
Facts: [2-3 key notable facts about the band/artist]

Be concise and factual. Focus on the most important members and facts.`, artist)
}

func articlePrompt(s Snapshot, source, pageTitle, article string) string {
	if len(article) > maxArticleChars {
		article = article[:maxArticleChars]
	}
	return fmt.Sprintf(`You are analyzing Wikipedia content about a %s.

Current song: %q by %s
Wikipedia page: %q

Wikipedia content:
%s

Extract 4-6 of the most interesting and surprising facts from this content: trivia, cultural impact,
chart performance, recording stories, historical context, awards.

Return ONLY a JSON array of fact strings, like ["fact 1", "fact 2"]. No additional text.`,
		source, s.TrackCore.Title, s.TrackCore.LeadArtist(), pageTitle, article)
}
