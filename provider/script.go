package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ZaguanLabs/ottolai"
)

// Default per-call deadlines for the subprocess adapters.
const (
	DefaultModelTimeout = 30 * time.Second
	DefaultOCRTimeout   = 60 * time.Second
)

// ScriptConfig holds configuration for subprocess-backed adapters.
type ScriptConfig struct {
	ScriptPath string        // Path to the adapter script (required)
	Python     string        // Python interpreter (default: "python3")
	Timeout    time.Duration // Per-call deadline
	TempDir    string        // Exchange-file directory (default: os.TempDir())
	WorkDir    string        // Subprocess working directory (default: script dir)
}

func (cfg *ScriptConfig) applyDefaults(timeout time.Duration) {
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeout
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = filepath.Dir(cfg.ScriptPath)
	}
}

// ScriptModel invokes an out-of-process model translator.
//
// Contract: the adapter runs as `python <script> <input-file>` and emits a
// single JSON object on stdout:
//
//	{"success": true, "turkish_text": "...", "confidence": 0.87, "processing_time": 0.3}
type ScriptModel struct {
	cfg ScriptConfig
}

// NewScriptModel creates a subprocess model provider.
func NewScriptModel(cfg ScriptConfig) *ScriptModel {
	cfg.applyDefaults(DefaultModelTimeout)
	return &ScriptModel{cfg: cfg}
}

// modelOutput mirrors the adapter's stdout record.
type modelOutput struct {
	Success        bool    `json:"success"`
	TurkishText    string  `json:"turkish_text"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime float64 `json:"processing_time"`
	Error          string  `json:"error"`
}

// Translate writes text to a request-scoped exchange file, runs the adapter
// under the configured deadline, and parses its output. The exchange file is
// removed on every path.
func (m *ScriptModel) Translate(ctx context.Context, text string) (*ottolai.ModelResult, error) {
	// The uuid keeps concurrent requests from colliding on the exchange file.
	path := filepath.Join(m.cfg.TempDir, "translate_"+uuid.NewString()+".txt")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return nil, &ottolai.AdapterError{Adapter: "model", Message: "writing exchange file", Cause: err}
	}
	defer os.Remove(path)

	stdout, aerr := runScript(ctx, "model", m.cfg, path)
	if aerr != nil {
		return nil, aerr
	}

	var out modelOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		return nil, &ottolai.AdapterError{Adapter: "model", Message: "unparseable adapter output", Cause: err}
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "adapter reported failure"
		}
		return nil, &ottolai.AdapterError{Adapter: "model", Message: msg}
	}
	if strings.TrimSpace(out.TurkishText) == "" {
		return nil, &ottolai.AdapterError{Adapter: "model", Message: "adapter returned empty translation"}
	}

	return &ottolai.ModelResult{
		TranslatedText: out.TurkishText,
		Confidence:     out.Confidence,
		ProcessingTime: out.ProcessingTime,
	}, nil
}

// runScript executes an adapter subprocess under the configured deadline and
// returns its trimmed stdout.
func runScript(ctx context.Context, adapter string, cfg ScriptConfig, inputPath string) ([]byte, *ottolai.AdapterError) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Python, cfg.ScriptPath, inputPath) // #nosec G204 - script path comes from configuration
	cmd.Dir = cfg.WorkDir
	cmd.Env = append(os.Environ(), "PYTHONIOENCODING=utf-8")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &ottolai.AdapterError{
			Adapter: adapter,
			Message: fmt.Sprintf("timed out after %s", cfg.Timeout),
			Cause:   ctx.Err(),
			Timeout: true,
		}
	}
	if err != nil {
		msg := "subprocess failed"
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg = fmt.Sprintf("subprocess failed: %s", s)
		}
		return nil, &ottolai.AdapterError{Adapter: adapter, Message: msg, Cause: err}
	}

	return bytes.TrimSpace(stdout.Bytes()), nil
}

var _ ModelProvider = (*ScriptModel)(nil)
