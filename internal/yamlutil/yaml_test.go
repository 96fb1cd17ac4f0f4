package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

type testSection struct {
	Enabled bool   `yaml:"enabled"`
	Class   string `yaml:"wideClass"`
}

type testConfig struct {
	Name  string      `yaml:"name"`
	Depth int         `yaml:"depth"`
	CJK   testSection `yaml:"cjk"`
}

// ---------------------------------------------------------------------------
// TestDecode - Strict decoding over defaults
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []yamlutil.Option
		want    testConfig
		wantErr error
		decode  bool
	}{
		{
			name: "overrides present keys",
			data: "name: 预览\ndepth: 4\ncjk:\n  wideClass: east-asian\n",
			want: testConfig{Name: "预览", Depth: 4, CJK: testSection{Enabled: true, Class: "east-asian"}},
		},
		{
			name: "absent keys keep defaults",
			data: "depth: 1\n",
			want: testConfig{Name: "default", Depth: 1, CJK: testSection{Enabled: true, Class: "ranges"}},
		},
		{
			name:   "unknown field rejected",
			data:   "bogus: 1\n",
			decode: true,
		},
		{
			name: "unknown field allowed",
			data: "bogus: 1\nname: x\n",
			opts: []yamlutil.Option{yamlutil.AllowUnknownFields()},
			want: testConfig{Name: "x", Depth: 2, CJK: testSection{Enabled: true, Class: "ranges"}},
		},
		{
			name:   "syntax error",
			data:   "name: [unclosed\n",
			decode: true,
		},
		{
			name:   "type mismatch",
			data:   "depth: deep\n",
			decode: true,
		},
		{
			name:    "empty document",
			data:    "",
			wantErr: yamlutil.ErrEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig{Name: "default", Depth: 2, CJK: testSection{Enabled: true, Class: "ranges"}}
			err := yamlutil.Decode([]byte(tt.data), &cfg, tt.opts...)

			switch {
			case tt.decode:
				var decodeErr *yamlutil.DecodeError
				if !errors.As(err, &decodeErr) {
					t.Errorf("Decode() error = %v, want *DecodeError", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Fatalf("Decode() error = %v", err)
				}
				if cfg != tt.want {
					t.Errorf("Decode() = %+v, want %+v", cfg, tt.want)
				}
			}
		})
	}
}

func TestDecode_NilDestination(t *testing.T) {
	t.Parallel()

	err := yamlutil.Decode([]byte("name: x"), nil)
	if !errors.Is(err, yamlutil.ErrNilDestination) {
		t.Errorf("Decode() error = %v, want ErrNilDestination", err)
	}
}

func TestDecodeError_Message(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	err := yamlutil.Decode([]byte("name: x\ncjk:\n  wideClas: ranges\n"), &cfg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "yamlutil: ") {
		t.Errorf("error = %q, want prefix %q", msg, "yamlutil: ")
	}
	// The misspelled key is named so the user can find it.
	if !strings.Contains(msg, "wideClas") {
		t.Errorf("error = %q, want it to name the unknown key", msg)
	}
	if errors.Unwrap(err) == nil {
		t.Error("DecodeError should unwrap to the underlying YAML error")
	}
}

// ---------------------------------------------------------------------------
// TestDecode_MaxSize - Document size bound
// ---------------------------------------------------------------------------

func TestDecode_MaxSize(t *testing.T) {
	t.Parallel()

	padded := func(n int) []byte {
		data := []byte(strings.Repeat(" ", n))
		copy(data, "name: x")
		return data
	}

	tests := []struct {
		name    string
		data    []byte
		opts    []yamlutil.Option
		wantErr bool
		wantMsg string
	}{
		{"at limit", padded(100), []yamlutil.Option{yamlutil.WithMaxSize(100)}, false, ""},
		{"over limit", padded(101), []yamlutil.Option{yamlutil.WithMaxSize(100)}, true, "101 bytes (max 100)"},
		{"non-positive limit ignored", padded(101), []yamlutil.Option{yamlutil.WithMaxSize(0)}, false, ""},
		{"default limit", padded(yamlutil.DefaultMaxSize + 1), nil, true, "max 1048576"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cfg testConfig
			err := yamlutil.Decode(tt.data, &cfg, tt.opts...)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Decode() error = %v", err)
				}
				return
			}
			if !errors.Is(err, yamlutil.ErrTooLarge) {
				t.Fatalf("Decode() error = %v, want ErrTooLarge", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err, tt.wantMsg)
			}
		})
	}
}
