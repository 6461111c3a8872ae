package delivery

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	"github.com/clinvoice/voice-backend/internal/ai"
	"github.com/clinvoice/voice-backend/internal/speech"
)

const maxAudioUpload = 20 << 20

type VoiceHandler struct {
	speechService *speech.Service
	aiService     ai.Service
	log           *logger.ZapLogger
}

func NewVoiceHandler(speechService *speech.Service, aiService ai.Service, log *logger.ZapLogger) *VoiceHandler {
	return &VoiceHandler{
		speechService: speechService,
		aiService:     aiService,
		log:           log,
	}
}

// SpeechToText transcribes the uploaded audio, enriches it with the
// patient's record and returns both the transcript and the model's answer.
func (h *VoiceHandler) SpeechToText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "missing audio file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read audio", http.StatusBadRequest)
		return
	}

	accessToken := r.FormValue("accessToken")
	patientID := r.FormValue("patientId")

	transcript, err := h.speechService.Transcribe(r.Context(), audio)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "transcription failed, request " + RequestIDFrom(r.Context()),
			Error:   err,
		})
		http.Error(w, "Speech-to-text failed.", http.StatusInternalServerError)
		return
	}

	llmResponse := h.aiService.GetInsights(r.Context(), transcript, patientID, accessToken)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"text":        transcript,
		"llmResponse": llmResponse,
	})
}

// TextToSpeech renders the given text to MP3 and streams the bytes back.
func (h *VoiceHandler) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "missing text", http.StatusBadRequest)
		return
	}

	audio, err := h.speechService.Synthesize(r.Context(), req.Text)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "synthesis failed, request " + RequestIDFrom(r.Context()),
			Error:   err,
		})
		http.Error(w, "Text-to-speech failed.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	_, _ = w.Write(audio)
}

func (h *VoiceHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Backend is running!"))
}
