package domain

// Language identifies which language an entry or conversation belongs to
type Language string

const (
	LanguageKorean   Language = "korean"
	LanguageJapanese Language = "japanese"
)

// Valid reports whether the language is one the tutor supports
func (l Language) Valid() bool {
	return l == LanguageKorean || l == LanguageJapanese
}

// ExamFor returns the graded exam type used for this language
func (l Language) ExamFor() ExamType {
	if l == LanguageJapanese {
		return ExamJLPT
	}
	return ExamTOPIK
}

// DifficultyTier is an ordered proficiency bucket attached to vocabulary
// and test questions. Beginner < Intermediate < Advanced.
type DifficultyTier int

const (
	TierBeginner DifficultyTier = iota
	TierIntermediate
	TierAdvanced
)

var tierNames = map[DifficultyTier]string{
	TierBeginner:     "beginner",
	TierIntermediate: "intermediate",
	TierAdvanced:     "advanced",
}

func (t DifficultyTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// Tiers lists all tiers in ascending difficulty order
func Tiers() []DifficultyTier {
	return []DifficultyTier{TierBeginner, TierIntermediate, TierAdvanced}
}

// PartOfSpeech is the grammatical category of an entry
type PartOfSpeech string

const (
	POSNoun      PartOfSpeech = "noun"
	POSVerb      PartOfSpeech = "verb"
	POSAdjective PartOfSpeech = "adjective"
	POSAdverb    PartOfSpeech = "adverb"
	POSParticle  PartOfSpeech = "particle"
	POSPhrase    PartOfSpeech = "phrase"
)

// KoreanDetails holds fields that only exist for Korean entries
type KoreanDetails struct {
	// Particles the entry is normally used with (e.g. 은/는, 이/가)
	ExpectedParticles []string
	Honorific         bool
}

// JapaneseDetails holds fields that only exist for Japanese entries
type JapaneseDetails struct {
	// DictionaryForm is the plain (dictionary) form for conjugating entries
	DictionaryForm string
	// ConjugationGroup is godan, ichidan or irregular; empty for non-verbs
	ConjugationGroup string
}

// VocabularyEntry is a single lexical or phrase entry in the corpus.
// Entries are immutable after corpus load and owned by the corpus.
// Exactly one of Korean/Japanese is set, matching Language.
type VocabularyEntry struct {
	ID            string
	Language      Language
	SurfaceForm   string
	CanonicalForm string
	Translation   string
	PartOfSpeech  PartOfSpeech
	Tier          DifficultyTier
	UsageExamples []string
	CulturalNote  string

	Korean   *KoreanDetails
	Japanese *JapaneseDetails
}
