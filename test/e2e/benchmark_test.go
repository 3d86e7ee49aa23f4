package e2e_test

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"testing"

	"github.com/mcncl/jdiff/internal/config"
	"github.com/mcncl/jdiff/internal/formatter"
	"github.com/mcncl/jdiff/internal/models"
	"github.com/mcncl/jdiff/internal/parser"
	"github.com/mcncl/jdiff/internal/position"
	"github.com/mcncl/jdiff/internal/report"
	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure; rng drives the leaf values
func generateNestedJSON(rng *rand.Rand, depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"count":      rng.Intn(100),
			"enabled":    rng.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})

	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(rng, depth-1, width)
	}

	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(rng *rand.Rand, fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})

	for i := 0; i < fieldCount; i++ {
		// Mix different types of fields
		switch i % 4 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", rng.Intn(3))
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = rng.Intn(3)
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = rng.Intn(2) == 1
		case 3:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]interface{}{
				"id":    i,
				"value": rng.Intn(3),
			}
		}
	}

	return result
}

func mustDocument(b *testing.B, v interface{}) *models.Document {
	b.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(b, err)
	doc, err := parser.ParseString(string(data))
	require.NoError(b, err)
	return doc
}

func benchmarkPipeline(b *testing.B, left, right *models.Document, strategy position.Strategy) {
	b.Helper()
	builder := report.NewBuilder(report.Options{Strategy: strategy})
	fmtr := formatter.NewFormatter(formatter.OptionsFromConfig(config.NewConfig(), io.Discard))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rep, err := builder.Build(left, right)
		if err != nil {
			b.Fatal(err)
		}
		if err := fmtr.Render(io.Discard, rep); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDeepNesting benchmarks diffing deeply nested JSON structures
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},   // Moderate nesting
		{"Depth5Width2", 5, 2},   // Deep nesting
		{"Depth2Width10", 2, 10}, // Wide but shallow
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			left := mustDocument(b, generateNestedJSON(rand.New(rand.NewSource(1)), depth.depth, depth.width))
			right := mustDocument(b, generateNestedJSON(rand.New(rand.NewSource(2)), depth.depth, depth.width))
			benchmarkPipeline(b, left, right, position.StrategyText)
		})
	}
}

// BenchmarkWideStructures benchmarks both position strategies on many top-level keys
func BenchmarkWideStructures(b *testing.B) {
	widths := []struct {
		name       string
		fieldCount int
	}{
		{"Fields10", 10},
		{"Fields100", 100},
		{"Fields1000", 1000},
	}

	for _, width := range widths {
		left := mustDocument(b, generateWideJSON(rand.New(rand.NewSource(1)), width.fieldCount))
		right := mustDocument(b, generateWideJSON(rand.New(rand.NewSource(2)), width.fieldCount))
		for _, strategy := range position.Strategies() {
			b.Run(fmt.Sprintf("%s/%s", width.name, strategy), func(b *testing.B) {
				benchmarkPipeline(b, left, right, strategy)
			})
		}
	}
}

// BenchmarkArrayProcessing benchmarks index-wise comparison of large arrays
func BenchmarkArrayProcessing(b *testing.B) {
	sizes := []struct {
		name      string
		arraySize int
	}{
		{"Array100", 100},
		{"Array1000", 1000},
		{"Array5000", 5000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			makeArray := func(rng *rand.Rand, n int) []map[string]interface{} {
				array := make([]map[string]interface{}, n)
				for i := range array {
					array[i] = map[string]interface{}{
						"id":       i,
						"name":     fmt.Sprintf("Item %d", i),
						"value":    rng.Intn(4),
						"category": fmt.Sprintf("Category %d", i%5),
					}
				}
				return array
			}
			left := mustDocument(b, map[string]interface{}{"items": makeArray(rand.New(rand.NewSource(1)), size.arraySize)})
			right := mustDocument(b, map[string]interface{}{"items": makeArray(rand.New(rand.NewSource(2)), size.arraySize+size.arraySize/10)})
			benchmarkPipeline(b, left, right, position.StrategyText)
		})
	}
}

// BenchmarkParse benchmarks building ordered documents
func BenchmarkParse(b *testing.B) {
	data, err := json.Marshal(generateWideJSON(rand.New(rand.NewSource(1)), 1000))
	require.NoError(b, err)
	input := string(data)

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.ParseString(input); err != nil {
			b.Fatal(err)
		}
	}
}
