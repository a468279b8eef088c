package ml

const (
	HANDLE_UNKNOWN_IGNORE     = "ignore"
	HANDLE_UNKNOWN_INFREQUENT = "infrequent_if_exist"
	HANDLE_UNKNOWN_ERROR      = "error"
)

// OneHotEncoder encodes categorical columns against the vocabulary seen in training.
//
// Each feature contributes one column per known category, in vocabulary order, minus
// the dropped category and any infrequent ones; infrequent categories share a single
// trailing column. A value outside the vocabulary never fails: it maps to the shared
// infrequent column when the encoder was exported with handle_unknown
// "infrequent_if_exist" and one exists, and to an all-zero block otherwise.
type OneHotEncoder struct {
	Name                 string    `json:"-"`
	Features             []string  `json:"features"`
	Categories           [][]Label `json:"categories"`
	InfrequentCategories [][]Label `json:"infrequent_categories,omitempty"`
	DropIdx              []*int    `json:"drop_idx,omitempty"`
	HandleUnknown        string    `json:"handle_unknown"`

	columns       []map[string]int
	infrequent    []map[string]struct{}
	infrequentCol []int
	offsets       []int
	width         int
}

// Validate checks the export and builds the lookup tables Encode relies on. It must be
// called once before the encoder is used.
func (e *OneHotEncoder) Validate() error {
	n := len(e.Features)
	if n == 0 {
		return invalidf("%s: no features", e.Name)
	}
	if len(e.Categories) != n {
		return invalidf("%s: %d category lists for %d features", e.Name, len(e.Categories), n)
	}
	if e.InfrequentCategories != nil && len(e.InfrequentCategories) != n {
		return invalidf("%s: %d infrequent lists for %d features", e.Name, len(e.InfrequentCategories), n)
	}
	if e.DropIdx != nil && len(e.DropIdx) != n {
		return invalidf("%s: %d drop indexes for %d features", e.Name, len(e.DropIdx), n)
	}
	switch e.HandleUnknown {
	case "":
		e.HandleUnknown = HANDLE_UNKNOWN_IGNORE
	case HANDLE_UNKNOWN_IGNORE, HANDLE_UNKNOWN_INFREQUENT, HANDLE_UNKNOWN_ERROR:
	default:
		return invalidf("%s: unsupported handle_unknown %q", e.Name, e.HandleUnknown)
	}

	e.columns = make([]map[string]int, n)
	e.infrequent = make([]map[string]struct{}, n)
	e.infrequentCol = make([]int, n)
	e.offsets = make([]int, n)
	e.width = 0

	for i := 0; i < n; i++ {
		e.offsets[i] = e.width

		rare := map[string]struct{}{}
		if e.InfrequentCategories != nil {
			for _, c := range e.InfrequentCategories[i] {
				rare[string(c)] = struct{}{}
			}
		}
		dropped := -1
		if e.DropIdx != nil && e.DropIdx[i] != nil {
			dropped = *e.DropIdx[i]
			if dropped < 0 || dropped >= len(e.Categories[i]) {
				return invalidf("%s: drop index %d out of range for %s", e.Name, dropped, e.Features[i])
			}
		}

		cols := make(map[string]int, len(e.Categories[i]))
		next := 0
		dropRare := false
		for j, c := range e.Categories[i] {
			key := string(c)
			if _, dup := cols[key]; dup {
				return invalidf("%s: duplicate category %q in %s", e.Name, key, e.Features[i])
			}
			if _, isRare := rare[key]; isRare {
				if j == dropped {
					dropRare = true
				}
				continue
			}
			if j == dropped {
				cols[key] = -1
				continue
			}
			cols[key] = next
			next++
		}
		e.infrequentCol[i] = -1
		if len(rare) > 0 && !dropRare {
			e.infrequentCol[i] = next
			next++
		}
		e.columns[i] = cols
		e.infrequent[i] = rare
		e.width += next
	}
	return nil
}

func (e *OneHotEncoder) NumInputs() int {
	return len(e.Features)
}

func (e *OneHotEncoder) NumOutputs() int {
	return e.width
}

func (e *OneHotEncoder) Encode(values []string) ([]float64, []Fallback, error) {
	if len(values) != len(e.Features) {
		return nil, nil, &DimensionError{Component: e.Name, Got: len(values), Want: len(e.Features)}
	}
	out := make([]float64, e.width)
	var fallbacks []Fallback
	for i, v := range values {
		if col, ok := e.columns[i][v]; ok {
			if col >= 0 {
				out[e.offsets[i]+col] = 1
			}
			continue
		}
		if _, ok := e.infrequent[i][v]; ok {
			if e.infrequentCol[i] >= 0 {
				out[e.offsets[i]+e.infrequentCol[i]] = 1
			}
			continue
		}
		fallbacks = append(fallbacks, Fallback{Feature: e.Features[i], Value: v})
		if e.HandleUnknown == HANDLE_UNKNOWN_INFREQUENT && e.infrequentCol[i] >= 0 {
			out[e.offsets[i]+e.infrequentCol[i]] = 1
		}
	}
	return out, fallbacks, nil
}
