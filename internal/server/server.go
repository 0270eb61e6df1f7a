package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/yuin/goldmark"

	"github.com/nguyentantai21042004/minutes-flow/internal/intake"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/pipeline"
)

const formField = "file"

type Server struct {
	app       *fiber.App
	pipeline  pipeline.Pipeline
	validator *intake.Validator
	logger    logger.Logger
}

type minutesResponse struct {
	RunID       string `json:"run_id"`
	ObjectURI   string `json:"object_uri"`
	Transcript  string `json:"transcript"`
	Minutes     string `json:"minutes"`
	MinutesHTML string `json:"minutes_html"`
	Filename    string `json:"filename"`
	MIMEType    string `json:"mime_type"`
	Document    string `json:"document"`
}

// New builds the HTTP surface. bodyLimitMB bounds the upload size.
func New(p pipeline.Pipeline, v *intake.Validator, log logger.Logger, bodyLimitMB int) *Server {
	s := &Server{
		pipeline:  p,
		validator: v,
		logger:    log,
	}

	s.app = fiber.New(fiber.Config{
		BodyLimit:             bodyLimitMB << 20,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Post("/api/minutes", s.handleMinutes)

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleMinutes(c *fiber.Ctx) error {
	ctx := c.UserContext()

	fh, err := c.FormFile(formField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "multipart field `file` is required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot read upload"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot read upload"})
	}

	media, err := s.validator.New(fh.Filename, fh.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		s.logger.Warn(ctx, "Rejected upload %q: %v", fh.Filename, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	s.logger.Info(ctx, "File %q received (%d bytes)", media.Filename, len(media.Data))

	res, err := s.pipeline.Run(ctx, media)
	if err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": stageErr.Err.Error(),
				"stage": string(stageErr.Stage),
			})
		}
		return err
	}

	if c.Query("format") == "json" {
		html, err := markdownHTML(res.Minutes)
		if err != nil {
			s.logger.Warn(ctx, "Markdown preview failed: %v", err)
		}
		return c.JSON(minutesResponse{
			RunID:       res.RunID,
			ObjectURI:   res.Object.URI,
			Transcript:  res.Transcript,
			Minutes:     res.Minutes,
			MinutesHTML: html,
			Filename:    res.Document.Filename,
			MIMEType:    res.Document.MIMEType,
			Document:    base64.StdEncoding.EncodeToString(res.Document.Data),
		})
	}

	c.Set(fiber.HeaderContentType, res.Document.MIMEType)
	c.Set(fiber.HeaderContentDisposition, contentDisposition(res.Document.Filename))
	return c.Send(res.Document.Data)
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// contentDisposition carries an ASCII fallback and the UTF-8 name.
func contentDisposition(filename string) string {
	return `attachment; filename="minutes.docx"; filename*=UTF-8''` + url.PathEscape(filename)
}

func markdownHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
