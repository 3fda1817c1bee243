package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/render"
	"github.com/rook-computer/keyviz/internal/state"
)

const maxRequestBody = 1 << 16

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type keyboardSummary struct {
	Name           string     `json:"name"`
	Size           [2]float64 `json:"size"`
	Configurations []string   `json:"configurations"`
	Keymaps        []string   `json:"keymaps"`
}

type keyResponse struct {
	ID       string     `json:"id"`
	Size     float64    `json:"size"`
	Position [2]float64 `json:"position"`
	Rotation float64    `json:"rotation"`
	Value    string     `json:"value"`
}

type keyboardDetail struct {
	keyboardSummary
	Keys map[string][]keyResponse `json:"keys"`
}

type sessionResponse struct {
	state.Session
	Version uint64 `json:"version"`
	Open    bool   `json:"open"`
}

type keyShapeResponse struct {
	*render.KeyShape
	State render.KeyState `json:"state"`
}

type sceneResponse struct {
	Keyboard      string             `json:"keyboard"`
	Configuration string             `json:"configuration"`
	Keymap        string             `json:"keymap,omitempty"`
	Theme         string             `json:"theme"`
	Policy        string             `json:"policy"`
	Width         float64            `json:"width"`
	Height        float64            `json:"height"`
	KeySize       float64            `json:"keySize"`
	Version       uint64             `json:"version"`
	Selected      string             `json:"selected,omitempty"`
	Border        render.Rect        `json:"border"`
	Keys          []keyShapeResponse `json:"keys"`
}

type labelRequest struct {
	Value string `json:"value"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/keyboards", func(w http.ResponseWriter, r *http.Request) { handleKeyboards(w, r, deps) })
	mux.HandleFunc("/keyboards/", func(w http.ResponseWriter, r *http.Request) { handleKeyboards(w, r, deps) })
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) { handleSession(w, r, deps) })
	mux.HandleFunc("/scene", func(w http.ResponseWriter, r *http.Request) { handleScene(w, r, deps) })
	mux.HandleFunc("/scene.svg", func(w http.ResponseWriter, r *http.Request) { handleSceneSVG(w, r, deps) })
	mux.HandleFunc("/scene.png", func(w http.ResponseWriter, r *http.Request) { handleScenePNG(w, r, deps) })
	mux.HandleFunc("/keys/", func(w http.ResponseWriter, r *http.Request) { handleKey(w, r, deps) })
	mux.HandleFunc("/selection", func(w http.ResponseWriter, r *http.Request) { handleSelection(w, r, deps) })
	mux.HandleFunc("/qr.png", handleQRCode)
	return mux
}

func handleKeyboards(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	registry := deps.Store.Registry()

	// /keyboards or /keyboards/
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/keyboards"), "/")
	if name == "" {
		names := registry.Names()
		out := make([]keyboardSummary, 0, len(names))
		for _, n := range names {
			kb, err := registry.Keyboard(n)
			if err != nil {
				continue
			}
			out = append(out, summarize(registry, kb))
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	// /keyboards/{name}
	kb, err := registry.Keyboard(name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	detail := keyboardDetail{keyboardSummary: summarize(registry, kb), Keys: make(map[string][]keyResponse)}
	for cfgName, cfg := range kb.Configurations {
		keys := make([]keyResponse, 0, len(cfg))
		for _, id := range cfg.IDs() {
			k := cfg[id]
			keys = append(keys, keyResponse{
				ID:       id,
				Size:     k.Width(),
				Position: [2]float64{k.Position.X, k.Position.Y},
				Rotation: k.Rotation,
				Value:    k.Value,
			})
		}
		detail.Keys[cfgName] = keys
	}
	writeJSON(w, http.StatusOK, detail)
}

func summarize(registry *keyboard.Registry, kb *keyboard.Keyboard) keyboardSummary {
	return keyboardSummary{
		Name:           kb.Name,
		Size:           [2]float64{kb.Size.X, kb.Size.Y},
		Configurations: kb.ConfigurationNames(),
		Keymaps:        registry.Keymaps(kb.Name),
	}
}

func handleSession(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	switch r.Method {
	case http.MethodGet:
		snap := deps.Store.Snapshot()
		writeJSON(w, http.StatusOK, sessionResponse{Session: snap.Session, Version: snap.Version, Open: snap.Scene != nil})
	case http.MethodPost:
		var req state.Session
		if err := decodeJSON(r, &req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		if strings.TrimSpace(req.Keyboard) == "" || strings.TrimSpace(req.Configuration) == "" {
			writeAPIError(w, http.StatusBadRequest, "invalid", "keyboard and configuration are required")
			return
		}
		if err := deps.Store.Open(req); err != nil {
			deps.Logger.Errorf("api", "open %s/%s failed: %v", req.Keyboard, req.Configuration, err)
			writeStoreError(w, err)
			return
		}
		deps.Logger.Infof("api", "opened %s/%s keymap=%q", req.Keyboard, req.Configuration, req.Keymap)
		snap := deps.Store.Snapshot()
		writeJSON(w, http.StatusOK, sessionResponse{Session: snap.Session, Version: snap.Version, Open: true})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// currentScene writes an error and returns nil when no session is open.
func currentScene(w http.ResponseWriter, r *http.Request, deps APIV1Deps) (state.Snapshot, bool) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return state.Snapshot{}, false
	}
	snap := deps.Store.Snapshot()
	if snap.Scene == nil {
		writeStoreError(w, state.ErrNoSession)
		return state.Snapshot{}, false
	}
	return snap, true
}

func handleScene(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	snap, ok := currentScene(w, r, deps)
	if !ok {
		return
	}
	scene := snap.Scene
	resp := sceneResponse{
		Keyboard:      scene.Keyboard,
		Configuration: scene.Configuration,
		Keymap:        scene.Keymap,
		Theme:         scene.Theme.Name,
		Policy:        scene.Policy.String(),
		Width:         scene.Width,
		Height:        scene.Height,
		KeySize:       scene.KeySize,
		Version:       snap.Version,
		Selected:      scene.Selected(),
		Border:        scene.Border,
		Keys:          make([]keyShapeResponse, 0, len(scene.Keys)),
	}
	for _, k := range scene.Keys {
		resp.Keys = append(resp.Keys, keyShapeResponse{KeyShape: k, State: k.State()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleSceneSVG(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	snap, ok := currentScene(w, r, deps)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.EncodeSVG(&buf, snap.Scene); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	writeBody(w, "image/svg+xml", snap.Version, buf.Bytes())
}

func handleScenePNG(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	snap, ok := currentScene(w, r, deps)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := deps.PNG.EncodePNG(&buf, snap.Scene); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	writeBody(w, "image/png", snap.Version, buf.Bytes())
}

func handleKey(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	// /keys/{id}/{action}
	rel := strings.Trim(strings.TrimPrefix(r.URL.Path, "/keys/"), "/")
	parts := strings.Split(rel, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
		return
	}
	id, action := parts[0], parts[1]

	var err error
	switch action {
	case "enter", "leave", "release":
		if r.Method != http.MethodPost {
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		switch action {
		case "enter":
			err = deps.Store.PointerEnter(id)
		case "leave":
			err = deps.Store.PointerLeave(id)
		default:
			err = deps.Store.PointerRelease(id)
		}
	case "label":
		if r.Method != http.MethodPut {
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		var req labelRequest
		if decodeErr := decodeJSON(r, &req); decodeErr != nil {
			writeAPIError(w, http.StatusBadRequest, "bad_request", decodeErr.Error())
			return
		}
		err = deps.Store.SetLabel(id, req.Value)
	default:
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleSelection(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodDelete {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if err := deps.Store.ClearSelection(); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleQRCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	payload := r.URL.Query().Get("url")
	if payload == "" {
		writeAPIError(w, http.StatusBadRequest, "invalid", "url is required")
		return
	}
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 2048 {
			writeAPIError(w, http.StatusBadRequest, "invalid", "size must be between 1 and 2048")
			return
		}
		size = parsed
	}
	png, err := render.QRCodePNG(payload, size)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid", err.Error())
		return
	}
	writeBody(w, "image/png", 0, png)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeStoreError maps model and session errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, keyboard.ErrNotFound):
		writeAPIError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, keyboard.ErrInvalid):
		writeAPIError(w, http.StatusBadRequest, "invalid", err.Error())
	case errors.Is(err, state.ErrNoSession):
		writeAPIError(w, http.StatusConflict, "no_session", err.Error())
	default:
		writeAPIError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

func writeBody(w http.ResponseWriter, contentType string, version uint64, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	if version > 0 {
		w.Header().Set("X-Scene-Version", strconv.FormatUint(version, 10))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
