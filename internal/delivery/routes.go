package delivery

import (
	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, h *VoiceHandler) {
	r.With(httputil.RecoverMiddleware).Get("/", h.Health)

	r.With(httputil.RecoverMiddleware, RequestID).Post("/stt", h.SpeechToText)
	r.With(httputil.RecoverMiddleware, RequestID).Post("/tts", h.TextToSpeech)
}
