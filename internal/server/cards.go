package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
	"github.com/matzehuels/tilecard/pkg/loop"
	"github.com/matzehuels/tilecard/pkg/preset"
)

// Request limits for POST /cards.
const (
	maxBodyBytes   = 64 << 10
	maxScriptLines = 1000
)

// cardRequest runs Script against Preset. Script lines use the intent
// syntax of the card command.
type cardRequest struct {
	Preset string   `json:"preset"`
	Script []string `json:"script"`
}

// gridJSON is the wire form of a grid state.
type gridJSON struct {
	Width    int      `json:"width"`
	Mode     string   `json:"mode"`
	Value    int      `json:"value"`
	Rows     int      `json:"rows"`
	Alphabet []string `json:"alphabet"`
	Data     []string `json:"data"`
}

type cardResponse struct {
	ID       string   `json:"id"`
	Preset   string   `json:"preset"`
	Caption  string   `json:"caption"`
	Text     string   `json:"text"`
	Grid     gridJSON `json:"grid"`
	Copies   []string `json:"copies,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func newCardResponse(name, caption string, s grid.State) (cardResponse, error) {
	text, err := grid.ShareText(caption, s)
	if err != nil {
		return cardResponse{}, err
	}
	return cardResponse{
		ID:      uuid.NewString(),
		Preset:  name,
		Caption: caption,
		Text:    text,
		Grid:    toGridJSON(s),
	}, nil
}

func toGridJSON(s grid.State) gridJSON {
	g := gridJSON{
		Width:    s.Width,
		Mode:     s.Height.Mode.String(),
		Value:    s.Height.Value,
		Rows:     grid.ShapeOf(s).Rows,
		Alphabet: make([]string, len(s.Alphabet)),
		Data:     make([]string, len(s.Data)),
	}
	for i, a := range s.Alphabet {
		g.Alphabet[i] = string(a)
	}
	for i, d := range s.Data {
		g.Data[i] = string(d)
	}
	return g
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "bad request body"))
		return
	}
	if err := validateCardRequest(&req); err != nil {
		writeError(w, err)
		return
	}

	surface := loop.NewScriptSurface(strings.NewReader(strings.Join(req.Script, "\n")))
	copies := &captureClipboard{}
	lp := loop.New(surface, copies, s.catalog,
		loop.WithLogger(s.logger),
		loop.WithInitialPreset(req.Preset),
		loop.WithPlaceholder(s.placeholder),
	)
	if err := lp.Run(r.Context()); err != nil {
		s.logger.Warn("card run failed", "preset", req.Preset, "run", lp.ID(), "err", err)
		writeError(w, unwrapRun(err))
		return
	}

	res, err := newCardResponse(req.Preset, surface.Caption(), surface.Last())
	if err != nil {
		writeError(w, err)
		return
	}
	res.ID = lp.ID().String()
	res.Copies = copies.texts()
	for _, e := range surface.Errors() {
		res.Warnings = append(res.Warnings, errs.UserMessage(e))
	}
	writeJSON(w, http.StatusOK, res)
}

// validateCardRequest checks a request before any preset loads. A script
// without a copy line gets one, so every run yields at least one card.
func validateCardRequest(req *cardRequest) error {
	req.Preset = strings.ToLower(strings.TrimSpace(req.Preset))
	if req.Preset == "" {
		req.Preset = preset.Default
	}
	if err := errs.ValidateName(req.Preset); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPreset, err, "bad preset name")
	}
	if len(req.Script) > maxScriptLines {
		return errs.New(errs.ErrCodeInvalidInput, "script too long (max %d lines)", maxScriptLines)
	}

	copies := 0
	for i, line := range req.Script {
		if strings.ContainsAny(line, "\r\n") {
			return errs.New(errs.ErrCodeInvalidInput, "script line %d contains a line break", i+1)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		in, err := loop.ParseIntent(trimmed)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidIntent, err, "script line %d", i+1)
		}
		if in.Kind == loop.KindCopy {
			if err := errs.ValidateCaption(in.Text); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidInput, err, "script line %d", i+1)
			}
			copies++
		}
	}
	if copies == 0 {
		req.Script = append(req.Script, "copy")
	}
	return nil
}

// unwrapRun strips the loop's context wrapping so the coded cause decides
// the status.
func unwrapRun(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "card run timed out")
	}
	return err
}

// captureClipboard records every card the loop copies.
type captureClipboard struct {
	mu   sync.Mutex
	text []string
}

func (c *captureClipboard) Write(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = append(c.text, text)
	return nil
}

func (c *captureClipboard) texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.text...)
}
