package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ESTIMATOR_LLM_API_KEY", "")
	t.Setenv("ESTIMATOR_ENV", "")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	rootFlags.output = formatJSON
	rootFlags.verbose = false
	quoteFlags.decide = false

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	v := map[string]any{"decision": "needs_review", "issues": []string{"missing_size"}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := render(&buf, formatJSON, v); err != nil {
			t.Fatalf("render: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["decision"] != "needs_review" {
			t.Errorf("decision = %v", got["decision"])
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := render(&buf, formatYAML, v); err != nil {
			t.Fatalf("render: %v", err)
		}
		var got struct {
			Decision string   `yaml:"decision"`
			Issues   []string `yaml:"issues"`
		}
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Decision != "needs_review" {
			t.Errorf("decision = %q", got.Decision)
		}
		if diff := cmp.Diff([]string{"missing_size"}, got.Issues); diff != "" {
			t.Errorf("issues mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := render(&bytes.Buffer{}, "xml", v); err == nil {
			t.Error("expected error")
		}
	})
}

func TestOrderText(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{name: "args joined", args: []string{"250", "cards"}, want: "250 cards"},
		{name: "dash reads stdin", stdin: "from stdin", args: []string{"-"}, want: "from stdin"},
		{name: "no args reads stdin", stdin: "piped", want: "piped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := orderText(strings.NewReader(tt.stdin), tt.args)
			if err != nil {
				t.Fatalf("orderText: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "quote", "Please print 250 business cards 85x55mm on C300 with lamination in 5 days")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	var got struct {
		Spec struct {
			Quantity int `json:"quantity"`
		} `json:"spec"`
		Pricing struct {
			Process    string  `json:"process"`
			FinalPrice float64 `json:"final_price"`
		} `json:"pricing"`
		Decision string `json:"decision"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Spec.Quantity != 250 {
		t.Errorf("quantity = %d, want 250", got.Spec.Quantity)
	}
	if got.Pricing.Process != "digital" {
		t.Errorf("process = %q, want digital", got.Pricing.Process)
	}
	if got.Pricing.FinalPrice <= 0 {
		t.Errorf("final_price = %v, want positive", got.Pricing.FinalPrice)
	}
	if got.Decision == "" {
		t.Error("empty decision")
	}
}

func TestQuoteEmpty(t *testing.T) {
	isolate(t)

	if _, err := execute(t, "   ", "quote", "-"); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestValidate(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "spec.json")
	spec := `{"product_type":"flyer","quantity":500,"size":"210x297mm","paper_type":"C350","color":"4/0","finishing":["spot_uv"],"turnaround_days":5,"missing_fields":[]}`
	if err := os.WriteFile(path, []byte(spec), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "validate", "--spec", path, "--text", "for free")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	var got struct {
		Decision string   `json:"decision"`
		Issues   []string `json:"issues"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Decision != "rejected" {
		t.Errorf("decision = %q, want rejected", got.Decision)
	}
	if diff := cmp.Diff([]string{"free_pricing"}, got.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestNotify(t *testing.T) {
	isolate(t)

	var hits atomic.Int32
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	t.Setenv("N8N_WEBHOOK_URL", srv.URL+"/webhook/order")
	t.Setenv("ESTIMATOR_WORKFLOW_WEBHOOK_URL", "")

	out, err := execute(t, "", "notify", "--order-id", "7", "--decision", "needs_review", "--price", "12.5")
	if err != nil {
		t.Fatalf("notify: %v (%s)", err, out)
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
	if payload["order_id"] != float64(7) || payload["decision"] != "needs_review" || payload["price"] != 12.5 {
		t.Errorf("payload = %v", payload)
	}
}

func TestNotifyRejectsUnknownDecision(t *testing.T) {
	isolate(t)

	if _, err := execute(t, "", "notify", "--order-id", "1", "--decision", "maybe"); err == nil {
		t.Error("expected error")
	}
}
