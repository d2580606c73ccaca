package extract

// Corrections maps misspellings found in transcripts to the correct name
type Corrections map[string]string

// DefaultCorrections lists the known transcription typos in member names
func DefaultCorrections() Corrections {
	return Corrections{
		"Steven Coengrachts": "Steven Coenegrachts",
		"Ridouhane Chahid":   "Ridouane Chahid",
	}
}

// Apply returns the corrected name and whether a correction fired
func (c Corrections) Apply(name string) (string, bool) {
	if fixed, ok := c[name]; ok {
		return fixed, true
	}
	return name, false
}
