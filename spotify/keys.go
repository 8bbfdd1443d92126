package spotify

var pitchClasses = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// KeyName maps a pitch class integer (0-11) to its name. Anything out of range,
// including the API's -1 for "no key detected", maps to "C".
func KeyName(key int) string {
	if key < 0 || key >= len(pitchClasses) {
		return pitchClasses[0]
	}
	return pitchClasses[key]
}

// ModeName maps 1 to "major" and every other value to "minor"
func ModeName(mode int) string {
	if mode == 1 {
		return "major"
	}
	return "minor"
}
