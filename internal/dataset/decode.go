// Package dataset decodes time-keyed chart data and provides it to engines.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

// rawSlice is one time key with its undecoded records, in input order.
type rawSlice struct {
	key     string
	records []map[string]any // nil entries are records that were not objects
}

// DecodeJSON reads a dataset shaped as {"<time>": [{...}, ...], ...}.
// Records that are not objects or that carry unusable fields are kept as
// malformed points so they can be counted but never drawn.
func DecodeJSON(r io.Reader) (*schema.Dataset, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("dataset must be a JSON object keyed by time")
	}

	var slices []rawSlice
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read time key: %w", err)
		}
		key, _ := tok.(string)

		var items []json.RawMessage
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("time key %q: expected an array of records: %w", key, err)
		}
		rs := rawSlice{key: key, records: make([]map[string]any, len(items))}
		for i, item := range items {
			var rec map[string]any
			if json.Unmarshal(item, &rec) == nil {
				rs.records[i] = rec
			}
		}
		slices = append(slices, rs)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return build(slices)
}

// DecodeYAML reads the same shape as DecodeJSON from a YAML document.
func DecodeYAML(r io.Reader) (*schema.Dataset, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, contract.ErrNoSlices
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, errors.New("dataset must be a YAML mapping keyed by time")
	}

	slices := make([]rawSlice, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i].Value, doc.Content[i+1]
		if value.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("time key %q: expected a sequence of records", key)
		}
		rs := rawSlice{key: key, records: make([]map[string]any, len(value.Content))}
		for j, item := range value.Content {
			var rec map[string]any
			if item.Decode(&rec) == nil {
				rs.records[j] = rec
			}
		}
		slices = append(slices, rs)
	}
	return build(slices)
}

// build normalises keys, rejects duplicates and orders the slices.
// Keys sort numerically when every key is a number, lexically otherwise.
func build(raw []rawSlice) (*schema.Dataset, error) {
	if len(raw) == 0 {
		return nil, contract.ErrNoSlices
	}

	numeric := true
	values := make([]float64, len(raw))
	for i := range raw {
		raw[i].key = strings.TrimSpace(raw[i].key)
		v, err := strconv.ParseFloat(raw[i].key, 64)
		if err != nil || math.IsNaN(v) {
			numeric = false
			continue
		}
		values[i] = v
	}

	ds := &schema.Dataset{Slices: make([]schema.TimeSlice, len(raw))}
	order := make([]int, len(raw))
	for i := range order {
		order[i] = i
	}
	if numeric {
		sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })
	} else {
		sort.SliceStable(order, func(a, b int) bool { return raw[order[a]].key < raw[order[b]].key })
	}

	for pos, i := range order {
		if pos > 0 {
			prev := order[pos-1]
			if (numeric && values[prev] == values[i]) || (!numeric && raw[prev].key == raw[i].key) {
				return nil, fmt.Errorf("%w: %q and %q", contract.ErrDuplicateKey, raw[prev].key, raw[i].key)
			}
		}
		points := make([]schema.DataPoint, len(raw[i].records))
		for j, rec := range raw[i].records {
			points[j] = toPoint(rec)
		}
		ds.Slices[pos] = schema.TimeSlice{Key: raw[i].key, Points: points}
	}
	return ds, nil
}

// toPoint converts a loose record. Missing or non-numeric metrics become NaN,
// which marks the point malformed.
func toPoint(rec map[string]any) schema.DataPoint {
	if rec == nil {
		return schema.DataPoint{XMetric: math.NaN(), YMetric: math.NaN(), SizeMetric: math.NaN()}
	}
	return schema.DataPoint{
		ID:         toString(rec["id"]),
		Label:      toString(rec["label"]),
		XMetric:    toFloat(rec["xMetric"]),
		YMetric:    toFloat(rec["yMetric"]),
		SizeMetric: toFloat(rec["sizeMetric"]),
		Category:   toString(rec["category"]),
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return math.NaN()
	}
}
