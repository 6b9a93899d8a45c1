package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"mindemotion-core/internal/adapter/store"
	"mindemotion-core/internal/domain/entity"
	"mindemotion-core/internal/usecase"
)

type fakeEmotions struct {
	result *entity.EmotionResult
	err    error
	text   string
}

func (f *fakeEmotions) Classify(text string) (*entity.EmotionResult, error) {
	f.text = text
	if strings.TrimSpace(text) == "" {
		return nil, entity.ErrEmptyText
	}
	return f.result, f.err
}

type fakeScans struct {
	result *entity.MriResult
	err    error
	read   []byte
}

func (f *fakeScans) Classify(img io.Reader) (*entity.MriResult, error) {
	f.read, _ = io.ReadAll(img)
	return f.result, f.err
}

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(context.Context, string) (string, error) {
	return f.reply, f.err
}

type fakeChat struct {
	reply string
	err   error
}

func (f *fakeChat) Reply(context.Context, []entity.Turn, string) (string, error) {
	return f.reply, f.err
}

type gateway struct {
	app       *fiber.App
	emotions  *fakeEmotions
	scans     *fakeScans
	completer *fakeCompleter
	chat      *fakeChat
}

func newGateway(t *testing.T) *gateway {
	t.Helper()

	g := &gateway{
		emotions: &fakeEmotions{result: &entity.EmotionResult{
			Text:       "ok",
			Emotion:    "joy",
			Confidence: 0.9,
			AllProbabilities: map[string]float64{
				"sadness": 0.02, "joy": 0.9, "love": 0.02,
				"anger": 0.02, "fear": 0.02, "surprise": 0.02,
			},
		}},
		scans:     &fakeScans{result: &entity.MriResult{RawLabel: "no", Label: "Normal", ProbYes: 0.1}},
		completer: &fakeCompleter{reply: `{"strategies": ["a", "b", "c", "d"]}`},
		chat:      &fakeChat{reply: "I hear you."},
	}

	handler := NewHandler(
		g.emotions,
		g.scans,
		usecase.NewCopingService(g.completer),
		usecase.NewAssistant(g.chat, store.NewSessionStore()),
		usecase.NewImageLink(),
	)

	g.app = fiber.New()
	SetupRouter(g.app, handler)
	return g
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestHome_ListsCapabilities(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, err := g.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	req.Equal("MindEmotion API is running", body["message"])
	req.NotEmpty(body["endpoints"])
}

func TestPredict_EmptyText(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/predict", `{"text":""}`)

	req.Equal(http.StatusBadRequest, resp.StatusCode)
	req.Equal("Text is empty", body["error"])
}

func TestPredict_Success(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/predict", `{"text":"good news"}`)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("joy", body["emotion"])
	req.Equal("good news", g.emotions.text)

	probs, ok := body["all_probabilities"].(map[string]any)
	req.True(ok)
	req.Len(probs, 6)
}

func TestPredict_MalformedBodyIsTolerated(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	// Lenient endpoint: a body that does not parse behaves like {"text":""}.
	resp, body := postJSON(t, g.app, "/predict", `{{{`)

	req.Equal(http.StatusBadRequest, resp.StatusCode)
	req.Equal("Text is empty", body["error"])
}

func TestGenerateImage_KnownPrompt(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/generate-image", `{"prompt":"a calm forest"}`)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("https://image.pollinations.ai/prompt/a%20calm%20forest", body["image_url"])
}

func TestGenerateImage_EmptyPrompt(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/generate-image", `{"prompt":""}`)

	req.Equal(http.StatusBadRequest, resp.StatusCode)
	req.Equal("Prompt is empty", body["error"])
}

func TestGenerateImage_WhitespacePrompt(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/generate-image", `{"prompt":"   "}`)

	req.Equal(http.StatusBadRequest, resp.StatusCode)
	req.Equal("Prompt is empty", body["error"])
}

func TestGenerateImage_MalformedBodyIsRejected(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	// Strict endpoint: malformed JSON is rejected outright.
	resp, body := postJSON(t, g.app, "/generate-image", `{{{`)

	req.Equal(http.StatusBadRequest, resp.StatusCode)
	req.Equal("invalid request body", body["error"])
}

func TestGenerateCoping_StructuredReply(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/generate-coping", `{"text":"stressed"}`)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal([]any{"a", "b", "c", "d"}, body["strategies"])
}

func TestGenerateCoping_DegradedReply(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)
	g.completer.reply = "take deep breaths"

	resp, body := postJSON(t, g.app, "/generate-coping", `{"text":"stressed"}`)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("take deep breaths", body["strategies"])
}

func TestGenerateCoping_EmptyText(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/generate-coping", `{"text":"  "}`)

	req.Equal(http.StatusBadRequest, resp.StatusCode)
	req.Equal("Text is empty", body["error"])
}

func TestGenerateCoping_UpstreamFailureIs500(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)
	g.completer.err = errors.New("upstream unavailable")

	resp, body := postJSON(t, g.app, "/generate-coping", `{"text":"stressed"}`)

	req.Equal(http.StatusInternalServerError, resp.StatusCode)
	req.Equal("internal server error", body["error"])
}

func TestChat_WhitespaceMessage(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/chat", `{"message":"   "}`)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("Please share what you are feeling or thinking.", body["reply"])
}

func TestChat_NeverRejectsMalformedBody(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/chat", `not json at all`)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("Please share what you are feeling or thinking.", body["reply"])
}

func TestChat_Reply(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/chat", `{"message":"rough week"}`)

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("I hear you.", body["reply"])
}

func TestChat_SessionLifecycle(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, body := postJSON(t, g.app, "/chat/session", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	id, ok := body["session_id"].(string)
	req.True(ok)
	req.NotEmpty(id)

	resp, body = postJSON(t, g.app, "/chat", `{"message":"hi","session_id":"`+id+`"}`)
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("I hear you.", body["reply"])
}

func TestChat_UpstreamFailureIs500(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)
	g.chat.err = errors.New("upstream unavailable")

	resp, body := postJSON(t, g.app, "/chat", `{"message":"hi"}`)

	req.Equal(http.StatusInternalServerError, resp.StatusCode)
	req.Equal("internal server error", body["error"])
}

func multipartScan(t *testing.T, fieldName string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, "scan.png")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestPredictMri_Success(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	body, contentType := multipartScan(t, "file", []byte("fake-scan-bytes"))
	httpReq := httptest.NewRequest(http.MethodPost, "/predict-mri", body)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := g.app.Test(httpReq)
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)

	parsed := decodeBody(t, resp)
	req.Equal("no", parsed["raw_label"])
	req.Equal("Normal", parsed["label"])
	req.Equal([]byte("fake-scan-bytes"), g.scans.read)
}

func TestPredictMri_MissingFileField(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	// A multipart body whose file sits under the wrong key.
	body, contentType := multipartScan(t, "image", []byte("fake"))
	httpReq := httptest.NewRequest(http.MethodPost, "/predict-mri", body)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := g.app.Test(httpReq)
	req.NoError(err)
	req.Equal(http.StatusBadRequest, resp.StatusCode)
	req.Equal("Upload image with form-data key: file", decodeBody(t, resp)["error"])
}

func TestPredictMri_NoBody(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, err := g.app.Test(httptest.NewRequest(http.MethodPost, "/predict-mri", nil))
	req.NoError(err)
	req.Equal(http.StatusBadRequest, resp.StatusCode)
	req.Equal("Upload image with form-data key: file", decodeBody(t, resp)["error"])
}

func TestPredictMri_ClassifierFaultIs500(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)
	g.scans.result = nil
	g.scans.err = errors.New("decode scan: bad image")

	body, contentType := multipartScan(t, "file", []byte("garbage"))
	httpReq := httptest.NewRequest(http.MethodPost, "/predict-mri", body)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := g.app.Test(httpReq)
	req.NoError(err)
	req.Equal(http.StatusInternalServerError, resp.StatusCode)
	req.Equal("internal server error", decodeBody(t, resp)["error"])
}

func TestHealth(t *testing.T) {
	req := require.New(t)
	g := newGateway(t)

	resp, err := g.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("healthy", decodeBody(t, resp)["status"])
}
