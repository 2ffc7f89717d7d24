package reader

import "github.com/sonnes/ytscribe/core"

// SelectTrack picks the track to fetch. Languages are tried in the order given;
// within a language a manually created track beats an auto-generated one.
// Matching is exact on the language code.
//
// The returned NoTranscriptError has no VideoID; callers add it with
// WithVideoID.
func SelectTrack(tracks []core.Track, langs []string) (int, error) {
	if len(tracks) == 0 {
		return -1, ErrTranscriptsDisabled
	}
	for _, lang := range langs {
		generated := -1
		for i, t := range tracks {
			if t.LanguageCode != lang {
				continue
			}
			if !t.IsGenerated {
				return i, nil
			}
			if generated < 0 {
				generated = i
			}
		}
		if generated >= 0 {
			return generated, nil
		}
	}
	return -1, &NoTranscriptError{
		Requested: langs,
		Available: languageCodes(tracks),
	}
}

func languageCodes(tracks []core.Track) []string {
	seen := make(map[string]bool, len(tracks))
	var codes []string
	for _, t := range tracks {
		if seen[t.LanguageCode] {
			continue
		}
		seen[t.LanguageCode] = true
		codes = append(codes, t.LanguageCode)
	}
	return codes
}
