package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"ficha-generator/backend"
	"ficha-generator/export"
	"ficha-generator/models"
	"ficha-generator/services"
)

// Status messages shown to the user, mirroring the original tool.
const (
	msgGenerated    = "Ficha generada correctamente."
	msgGenerateFail = "No pude generar la ficha. Revisa la URL o inténtalo de nuevo."
	msgMissingURL   = "Pega primero una URL de Portal Inmobiliario."
	msgNoFicha      = "No hay ficha cargada."
	msgExportBusy   = "Ya hay una exportación en curso."
	msgExportFail   = "Ocurrió un problema al generar el PDF."
)

type generateRequest struct {
	URL string `json:"url"`
}

type generateResponse struct {
	OK           bool                  `json:"ok"`
	Message      string                `json:"message,omitempty"`
	Card         *models.CardViewModel `json:"card,omitempty"`
	WhatsappText string                `json:"whatsapp_text,omitempty"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissingURL})
		return
	}
	if backend.CleanListingURL(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissingURL})
		return
	}

	rec, err := s.client.Fetch(r.Context(), req.URL)
	if err != nil {
		// Failure clears the slot: no stale ficha survives a failed refresh.
		s.session.Clear()

		var be *backend.BackendError
		if errors.As(err, &be) {
			s.logger.Warn().Str("url", req.URL).Str("backend_error", be.Message).Msg("backend rejected listing")
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: be.Message})
			return
		}
		s.logger.Warn().Str("url", req.URL).Err(err).Msg("listing fetch failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: msgGenerateFail})
		return
	}

	view := services.BuildView(rec)
	s.session.Replace(rec, view)

	message := services.ComposeMessage(view)
	s.recordHistory(view, message)

	writeJSON(w, http.StatusOK, generateResponse{
		OK:           true,
		Message:      msgGenerated,
		Card:         services.ComposeCard(view),
		WhatsappText: message,
	})
}

func (s *Server) handleCurrentCard(w http.ResponseWriter, r *http.Request) {
	view, ok := s.session.Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNoFicha})
		return
	}
	writeJSON(w, http.StatusOK, services.ComposeCard(view))
}

// handleMessage serves the WhatsApp text as selectable plain text — the
// manual fallback when the caller has no clipboard access.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	view, ok := s.session.Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNoFicha})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(services.ComposeMessage(view)))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	view, ok := s.session.Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNoFicha})
		return
	}

	if !s.session.BeginExport() {
		writeJSON(w, http.StatusConflict, errorResponse{Error: msgExportBusy})
		return
	}
	defer s.session.EndExport()

	res, err := s.exporter.Export(r.Context(), view)
	if err != nil {
		if errors.Is(err, export.ErrCaptureUnavailable) {
			s.logger.Error().Err(err).Msg("capture engine unavailable")
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: msgExportFail})
			return
		}
		s.logger.Error().Err(err).Msg("export failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgExportFail})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	_, _ = w.Write(res.PDF)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Historial no configurado."})
		return
	}
	recs, err := s.store.Recent(20)
	if err != nil {
		s.logger.Error().Err(err).Msg("history query failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "No pude leer el historial."})
		return
	}
	if recs == nil {
		recs = []*models.FichaRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "fichas": recs})
}

// recordHistory is best-effort: a storage hiccup never blocks generation.
func (s *Server) recordHistory(view *models.NormalizedView, message string) {
	if s.store == nil {
		return
	}
	err := s.store.Insert(&models.FichaRecord{
		ItemCode:       view.ItemCode,
		Title:          view.Titulo,
		FormattedPrice: view.FormattedPrice,
		SourceURL:      view.SourceURL,
		Message:        message,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("history insert failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
