package enrichment

import "strings"

// knownBand is a hand-maintained entry for artists whose details rarely change
type knownBand struct {
	match        string
	band         BandInfo
	facts        SongFacts
	hasSongFacts bool
}

var knownBands = []knownBand{
	{
		match: "beatles",
		band: BandInfo{
			Members:       []string{"John Lennon", "Paul McCartney", "George Harrison", "Ringo Starr"},
			FormationYear: "1960",
			Origin:        "Liverpool, England",
			NotableFacts: []string{
				"Best-selling music act of all time",
				"Disbanded in 1970 after 10 years together",
				"Revolutionized popular music and culture",
			},
		},
		facts:        SongFacts{Studio: "Abbey Road Studios", Producer: "George Martin", AlbumSales: "Multi-platinum"},
		hasSongFacts: true,
	},
	{
		match: "pink floyd",
		band: BandInfo{
			Members:       []string{"David Gilmour", "Roger Waters", "Nick Mason", "Richard Wright"},
			FormationYear: "1965",
			Origin:        "London, England",
			NotableFacts: []string{
				"Pioneers of progressive rock",
				"Known for elaborate live shows",
				`"The Dark Side of the Moon" spent 14 years on Billboard 200`,
			},
		},
		facts:        SongFacts{Studio: "Abbey Road Studios", Producer: "Pink Floyd", AlbumSales: "Multi-platinum"},
		hasSongFacts: true,
	},
	{
		match: "radiohead",
		band: BandInfo{
			Members:       []string{"Thom Yorke", "Jonny Greenwood", "Colin Greenwood", "Ed O'Brien", "Philip Selway"},
			FormationYear: "1985",
			Origin:        "Abingdon, England",
			NotableFacts: []string{
				"Evolved from alternative rock to experimental electronic",
				`Released "In Rainbows" using pay-what-you-want model`,
				"Known for innovative use of technology in music",
			},
		},
	},
	{
		match: "nirvana",
		band: BandInfo{
			Members:       []string{"Kurt Cobain", "Krist Novoselic", "Dave Grohl"},
			FormationYear: "1987",
			Origin:        "Aberdeen, Washington",
			NotableFacts: []string{
				"Brought grunge and alternative rock to mainstream",
				`"Nevermind" knocked Michael Jackson off #1`,
				"Band ended with Kurt Cobain's death in 1994",
			},
		},
	},
	{
		match: "led zeppelin",
		band: BandInfo{
			Members:       []string{"Robert Plant", "Jimmy Page", "John Paul Jones", "John Bonham"},
			FormationYear: "1968",
			Origin:        "London, England",
			NotableFacts: []string{
				"One of the most influential rock bands",
				"Pioneers of heavy metal and hard rock",
				"Fourth highest-selling album band in US history",
			},
		},
		facts:        SongFacts{Studio: "Various studios", Producer: "Jimmy Page", AlbumSales: "Multi-platinum"},
		hasSongFacts: true,
	},
}

func lookupKnownBand(artist string) (knownBand, bool) {
	artist = strings.ToLower(artist)
	if artist == "" {
		return knownBand{}, false
	}
	for _, k := range knownBands {
		if strings.Contains(artist, k.match) {
			return k, true
		}
	}
	return knownBand{}, false
}

// staticBandInfo returns a copy so callers may modify it
func staticBandInfo(artist string) (BandInfo, bool) {
	k, ok := lookupKnownBand(artist)
	if !ok {
		return BandInfo{}, false
	}
	b := k.band
	b.Members = append([]string(nil), b.Members...)
	b.NotableFacts = append([]string(nil), b.NotableFacts...)
	b.Source = SourceDatabase
	return b, true
}

func staticSongFacts(artist string) (SongFacts, bool) {
	k, ok := lookupKnownBand(artist)
	if !ok || !k.hasSongFacts {
		return SongFacts{}, false
	}
	return k.facts, true
}

// eraSongFacts guesses from the release year; an unknown year falls into the oldest era
func eraSongFacts(year int) SongFacts {
	switch {
	case year >= 2010:
		return SongFacts{Studio: "Digital studio", Producer: "Modern producer", AlbumSales: "Streaming era"}
	case year >= 1990:
		return SongFacts{Studio: "Professional studio", Producer: "Professional producer", AlbumSales: "CD era sales"}
	default:
		return SongFacts{Studio: "Analog studio", Producer: "Traditional producer", AlbumSales: "Vinyl/analog era"}
	}
}
