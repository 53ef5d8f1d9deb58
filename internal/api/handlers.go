package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/birthdaycard/internal/cards"
	"github.com/youruser/birthdaycard/internal/genai"
	imagepkg "github.com/youruser/birthdaycard/internal/image"
)

// CardService is what the handlers need from the card service.
type CardService interface {
	Create(ctx context.Context, req cards.Request) (cards.Card, error)
	Get(ctx context.Context, id string) (cards.Card, error)
}

type Handler struct {
	svc       CardService
	baseURL   string
	maxUpload int64
}

// NewHandler returns the card handlers. baseURL is the public address used
// in links and QR codes; maxUploadMB limits each uploaded image.
func NewHandler(svc CardService, baseURL string, maxUploadMB int64) *Handler {
	return &Handler{
		svc:       svc,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxUpload: maxUploadMB << 20,
	}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type cardResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	Greeting    string `json:"greeting"`
	DownloadURL string `json:"download_url"`
	QRURL       string `json:"qr_url"`
}

func (h *Handler) cardURL(id string) string {
	return h.baseURL + "/api/cards/" + id
}

func (h *Handler) response(card cards.Card) cardResponse {
	return cardResponse{
		ID:          card.ID,
		FileName:    card.FileName,
		Greeting:    card.Greeting,
		DownloadURL: h.cardURL(card.ID),
		QRURL:       h.cardURL(card.ID) + "/qr",
	}
}

// createCard accepts the card form as multipart data: name, date, age,
// profession and optional photo and logo files.
func (h *Handler) createCard(c *gin.Context) {
	// two images plus form fields
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.maxUpload+1<<20)

	req := cards.Request{
		Name:       strings.TrimSpace(c.PostForm("name")),
		Date:       strings.TrimSpace(c.PostForm("date")),
		Age:        strings.TrimSpace(c.PostForm("age")),
		Profession: strings.TrimSpace(c.PostForm("profession")),
	}
	var err error
	if req.Photo, err = h.readUpload(c, "photo"); err != nil {
		writeError(c, err)
		return
	}
	if req.Logo, err = h.readUpload(c, "logo"); err != nil {
		writeError(c, err)
		return
	}

	card, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	if inline, _ := strconv.ParseBool(c.Query("inline")); inline {
		c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, card.FileName))
		c.Header("Location", h.cardURL(card.ID))
		c.Data(http.StatusCreated, "image/png", card.PNG)
		return
	}
	c.JSON(http.StatusCreated, h.response(card))
}

var errTooLarge = errors.New("upload too large")

// readUpload returns the bytes of an optional form file.
func (h *Handler) readUpload(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, errTooLarge
		}
		return nil, badRequest(fmt.Errorf("%s: %w", field, err))
	}
	if fh.Size > h.maxUpload {
		return nil, errTooLarge
	}
	return readFile(fh)
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) downloadCard(c *gin.Context) {
	card, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, card.FileName))
	c.Data(http.StatusOK, "image/png", card.PNG)
}

func (h *Handler) cardMeta(c *gin.Context) {
	card, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(card))
}

// cardQR returns a PNG QR code pointing at the card download.
func (h *Handler) cardQR(c *gin.Context) {
	card, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	size := imagepkg.QRDefaultSize
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(h.cardURL(card.ID), size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return badRequestError{err: err} }

// writeError maps domain errors to status codes.
func writeError(c *gin.Context, err error) {
	var (
		ve  *cards.ValidationError
		de  *imagepkg.DecodeError
		se  *genai.ServiceError
		re  *imagepkg.RenderError
		bre badRequestError
	)
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.As(err, &ve), errors.As(err, &bre):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, errTooLarge):
		status, msg = http.StatusRequestEntityTooLarge, err.Error()
	case cards.IsNotFound(err):
		status, msg = http.StatusNotFound, cards.ErrNotFound.Error()
	case errors.As(err, &de):
		status, msg = http.StatusUnprocessableEntity, "could not read the "+de.Asset+" image"
	case errors.As(err, &se):
		status, msg = http.StatusBadGateway, "could not generate the card background, please try again"
	case errors.As(err, &re):
		msg = "could not draw the card"
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}
