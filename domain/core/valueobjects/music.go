package valueobjects

import "math"

// Note is one of the twelve chromatic pitch classes.
// Notes are cosmetic clustering metadata for visualization; they never
// feed back into strain propagation.
type Note int

const (
	NoteC Note = iota
	NoteCSharp
	NoteD
	NoteDSharp
	NoteE
	NoteF
	NoteFSharp
	NoteG
	NoteGSharp
	NoteA
	NoteASharp
	NoteB
)

var noteNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// String returns the conventional name of the note.
func (n Note) String() string {
	if n < 0 || int(n) >= len(noteNames) {
		return "?"
	}
	return noteNames[n]
}

// Transpose shifts the note by the given number of semitones, wrapping
// around the octave.
func (n Note) Transpose(semitones int) Note {
	return Note(((int(n)+semitones)%12 + 12) % 12)
}

// Frequency returns the pitch in Hz at the given octave, anchored at
// A4 = 440 Hz in twelve-tone equal temperament.
func (n Note) Frequency(octave int) float64 {
	// Semitone distance from A4.
	semitones := float64(int(n)-int(NoteA)) + float64(octave-4)*12
	return 440.0 * math.Pow(2, semitones/12.0)
}

// ChordQuality identifies one of the fixed chord templates used when a
// strain cluster is assigned notes.
type ChordQuality int

const (
	ChordMajor ChordQuality = iota
	ChordMinor
	ChordDiminished
	ChordAugmented
	ChordMajorSeventh
	ChordMinorSeventh
)

var chordNames = [...]string{
	"major", "minor", "diminished", "augmented", "major7", "minor7",
}

// String returns the chord quality name.
func (q ChordQuality) String() string {
	if q < 0 || int(q) >= len(chordNames) {
		return "?"
	}
	return chordNames[q]
}

// Intervals returns the semitone offsets from the root for this quality.
func (q ChordQuality) Intervals() []int {
	switch q {
	case ChordMajor:
		return []int{0, 4, 7}
	case ChordMinor:
		return []int{0, 3, 7}
	case ChordDiminished:
		return []int{0, 3, 6}
	case ChordAugmented:
		return []int{0, 4, 8}
	case ChordMajorSeventh:
		return []int{0, 4, 7, 11}
	case ChordMinorSeventh:
		return []int{0, 3, 7, 10}
	default:
		return []int{0}
	}
}

// ChordQualityCount is the number of fixed chord templates.
const ChordQualityCount = len(chordNames)
