package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cmlayout/pkg/cache"
	"github.com/matzehuels/cmlayout/pkg/codec"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

// A button driving a NOR chain whose middle links sit far apart.
const testSave = "4,,,,,;0,,1,,,;0,,6,,,;0,,2,,,;0,,5,,,;6,,7,,,?1,2;2,3;3,4;4,5;5,6??"

func quietRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Optimize.Iterations = 500
	opts.Optimize.ReportEvery = 100
	opts.Optimize.InitialTemperature = 0
	return opts
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"save", false},
		{"dot", false},
		{"svg", false},
		{"json", false},
		{"SVG", false},
		{"png", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptions_Validate(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.ValidateForOptimize(); err != nil {
		t.Errorf("default options should validate: %v", err)
	}

	opts.Codec.Rounding = -1
	if err := opts.ValidateForOptimize(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("negative rounding error = %v, want INVALID_CONFIG", err)
	}

	opts = DefaultOptions()
	opts.Optimize.Criterion = "greedy"
	if err := opts.ValidateForOptimize(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown criterion error = %v, want INVALID_CONFIG", err)
	}

	opts = DefaultOptions()
	opts.Format = "DOT"
	if err := opts.ValidateForRender(); err != nil || opts.Format != FormatDOT {
		t.Errorf("ValidateForRender() = %v, format %q", err, opts.Format)
	}
}

func TestRunner_Optimize(t *testing.T) {
	ctx := context.Background()
	r := quietRunner(t)
	defer r.Close()

	first, err := r.Optimize(ctx, []byte(testSave), testOptions())
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	if first.CacheHit {
		t.Error("first Optimize() should miss the cache")
	}
	if first.Anneal.Iterations != 500 {
		t.Errorf("Iterations = %d, want 500", first.Anneal.Iterations)
	}
	if first.Anneal.FinalWireLength > first.Anneal.InitialWireLength {
		t.Errorf("wire length grew: %v -> %v", first.Anneal.InitialWireLength, first.Anneal.FinalWireLength)
	}
	if _, err := codec.Deserialize(string(first.Output)); err != nil {
		t.Errorf("output does not decode: %v", err)
	}

	second, err := r.Optimize(ctx, []byte(testSave), testOptions())
	if err != nil {
		t.Fatalf("second Optimize() error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second Optimize() should hit the cache")
	}
	if string(second.Output) != string(first.Output) {
		t.Error("cached output differs from computed output")
	}

	refresh := testOptions()
	refresh.Refresh = true
	third, _ := r.Optimize(ctx, []byte(testSave), refresh)
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunner_OptimizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := quietRunner(t)

	res, err := r.Optimize(ctx, []byte(testSave), testOptions())
	if err != context.Canceled {
		t.Fatalf("Optimize() error = %v, want context.Canceled", err)
	}
	if res == nil || len(res.Output) == 0 {
		t.Fatal("canceled Optimize() should still return the current placement")
	}

	again, err := r.Optimize(context.Background(), []byte(testSave), testOptions())
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	if again.CacheHit {
		t.Error("a canceled run must not be cached")
	}
}

func TestRunner_OptimizeMalformed(t *testing.T) {
	r := quietRunner(t)
	_, err := r.Optimize(context.Background(), []byte("not a save"), testOptions())
	if !errors.Is(err, errors.ErrCodeMalformedRecord) {
		t.Errorf("Optimize() error = %v, want MALFORMED_RECORD", err)
	}
}

func TestRunner_Export(t *testing.T) {
	ctx := context.Background()
	r := quietRunner(t)

	tests := []struct {
		format string
		want   string
	}{
		{FormatDOT, "n1 -> n2;"},
		{FormatJSON, `"edges"`},
		{FormatSave, "?1,2;2,3"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Format = tt.format
			out, hit, err := r.Export(ctx, []byte(testSave), opts)
			if err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			if hit {
				t.Error("first Export() should miss the cache")
			}
			if !strings.Contains(string(out), tt.want) {
				t.Errorf("Export() output missing %q:\n%s", tt.want, out)
			}

			_, hit, _ = r.Export(ctx, []byte(testSave), opts)
			if !hit {
				t.Error("second Export() should hit the cache")
			}
		})
	}
}

func TestStats_String(t *testing.T) {
	s := Stats{Components: 3}
	if got := s.String(); !strings.HasPrefix(got, "3 components") {
		t.Errorf("String() = %q", got)
	}
}
