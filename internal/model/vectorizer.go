package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

type vectorizerArtifact struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Lowercase   *bool          `json:"lowercase"`
	NgramRange  []int          `json:"ngram_range"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
}

// TFIDFVectorizer turns free text into TF-IDF weighted term features.
type TFIDFVectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	lowercase   bool
	ngramMin    int
	ngramMax    int
	sublinearTF bool
	norm        string
}

func LoadVectorizer(path string) (*TFIDFVectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectorizer %s: %w", path, err)
	}
	var a vectorizerArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode vectorizer %s: %w", path, err)
	}
	v, err := newVectorizer(a)
	if err != nil {
		return nil, fmt.Errorf("vectorizer %s: %w", path, err)
	}
	return v, nil
}

func newVectorizer(a vectorizerArtifact) (*TFIDFVectorizer, error) {
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("empty vocabulary")
	}
	if len(a.IDF) != len(a.Vocabulary) {
		return nil, fmt.Errorf("idf has %d entries for %d terms", len(a.IDF), len(a.Vocabulary))
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(a.IDF) {
			return nil, fmt.Errorf("term %q has index %d out of range", term, idx)
		}
	}

	v := &TFIDFVectorizer{
		vocabulary:  a.Vocabulary,
		idf:         a.IDF,
		lowercase:   a.Lowercase == nil || *a.Lowercase,
		ngramMin:    1,
		ngramMax:    1,
		sublinearTF: a.SublinearTF,
		norm:        a.Norm,
	}
	if len(a.NgramRange) == 2 {
		v.ngramMin, v.ngramMax = a.NgramRange[0], a.NgramRange[1]
	}
	if v.ngramMin < 1 || v.ngramMax < v.ngramMin {
		return nil, fmt.Errorf("invalid ngram range %v", a.NgramRange)
	}
	switch v.norm {
	case "":
		v.norm = "l2"
	case "l1", "l2", "none":
	default:
		return nil, fmt.Errorf("unsupported norm %q", v.norm)
	}
	return v, nil
}

func (v *TFIDFVectorizer) NumFeatures() int {
	return len(v.idf)
}

// Vectorize counts known terms and n-grams in text and weights them by IDF.
// Unknown terms are ignored, so the result may be empty.
func (v *TFIDFVectorizer) Vectorize(text string) (Features, error) {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	tokens := tokenPattern.FindAllString(text, -1)

	counts := make(map[int]float64)
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if idx, ok := v.vocabulary[term]; ok {
				counts[idx]++
			}
		}
	}

	features := make(Features, len(counts))
	for idx, tf := range counts {
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		features[idx] = tf * v.idf[idx]
	}
	normalize(features, v.norm)
	return features, nil
}

func normalize(f Features, norm string) {
	var total float64
	switch norm {
	case "l1":
		for _, x := range f {
			total += math.Abs(x)
		}
	case "l2":
		for _, x := range f {
			total += x * x
		}
		total = math.Sqrt(total)
	default:
		return
	}
	if total == 0 {
		return
	}
	for idx := range f {
		f[idx] /= total
	}
}
