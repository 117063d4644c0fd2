package progress

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

// FormatVersion is written into every encoded profile. Decoding accepts any
// version with the same major.
const FormatVersion = "v1.0.0"

// ErrUnsupportedVersion is returned when an encoded profile has a missing or
// incompatible format version.
var ErrUnsupportedVersion = errors.New("unsupported profile format version")

// ErrCorruptProfile is returned when a decoded profile holds values no
// sequence of completions could produce.
var ErrCorruptProfile = errors.New("corrupt profile")

type envelope struct {
	FormatVersion string      `json:"format_version"`
	Profile       UserProfile `json:"profile"`
}

// Encode serializes a profile.
func Encode(p UserProfile) ([]byte, error) {
	b, err := json.Marshal(envelope{FormatVersion: FormatVersion, Profile: p})
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return b, nil
}

// Decode parses a profile written by Encode. The stored level is discarded
// and recomputed from TotalXP.
func Decode(data []byte) (UserProfile, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	if !semver.IsValid(env.FormatVersion) || semver.Major(env.FormatVersion) != semver.Major(FormatVersion) {
		return UserProfile{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, env.FormatVersion)
	}

	p := env.Profile
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
	if p.TotalXP > MaxTotalXP {
		return UserProfile{}, fmt.Errorf("%w: total xp %d out of range", ErrCorruptProfile, p.TotalXP)
	}
	p.CurrentLevel = LevelForXP(p.TotalXP)
	if p.Achievements == nil {
		p.Achievements = []Achievement{}
	}
	if p.Records == nil {
		p.Records = []LessonRecord{}
	}
	return p, nil
}
