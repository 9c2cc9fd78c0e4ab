package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"talentgate/internal/domain"
	"talentgate/internal/model"
	"talentgate/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BlobServer redeems signed blob URLs issued by the blob store.
type BlobServer interface {
	Open(path string) ([]byte, error)
	VerifySignature(path string, exp int64, sig string) bool
}

type Handler struct {
	resolver *usecase.IdentityResolver
	jobs     *usecase.JobService
	intake   *usecase.IntakeService
	review   *usecase.ReviewService
	blobs    BlobServer
	log      *zap.Logger
}

func NewHandler(resolver *usecase.IdentityResolver, jobs *usecase.JobService, intake *usecase.IntakeService, review *usecase.ReviewService, blobs BlobServer, log *zap.Logger) *Handler {
	return &Handler{resolver: resolver, jobs: jobs, intake: intake, review: review, blobs: blobs, log: log}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/files/:name", h.ServeBlob)

	api := app.Group("/api")
	api.Get("/public/jobs/:id", h.PublicJob)
	api.Post("/jobs/:id/apply", h.Apply)

	auth := api.Group("", h.requireAuth)
	auth.Post("/jobs", h.CreateJob)
	auth.Get("/jobs", h.ListJobs)
	auth.Get("/jobs/:id", h.GetJob)
	auth.Put("/jobs/:id/rubric", h.UpdateRubric)
	auth.Get("/jobs/:id/applicants", h.Applicants)
	auth.Get("/jobs/:id/ranking", h.Ranking)
	auth.Get("/applications/:id", h.ApplicationDetail)
	auth.Put("/applications/:id/evaluation", h.SaveEvaluation)
	auth.Put("/applications/:id/hired", h.SetHired)
	auth.Get("/applications/:id/resume-url", h.ResumeURL)
}

// requireAuth resolves the caller's identity and stashes it in locals.
func (h *Handler) requireAuth(c *fiber.Ctx) error {
	ident, err := h.resolver.Resolve(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return h.respondError(c, err)
	}
	c.Locals("identity", ident)
	return c.Next()
}

func identityFrom(c *fiber.Ctx) domain.Identity {
	ident, _ := c.Locals("identity").(domain.Identity)
	return ident
}

func idParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.NewError(domain.CodeValidation, "invalid id", err)
	}
	return id, nil
}

// respondError maps the error taxonomy onto HTTP statuses. Not-found and
// not-yours share 404 on purpose; anything unclassified degrades to a
// generic 500 carrying the detail string for operator diagnosis.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	var appErr *domain.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case domain.CodeUnauthenticated:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": appErr.Message})
		case domain.CodeProfileNotFound, domain.CodeNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": appErr.Message})
		case domain.CodeForbidden, domain.CodeQuotaExceeded:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": appErr.Message})
		case domain.CodeValidation:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": appErr.Message})
		}
	}
	h.log.Error("unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error", "details": err.Error()})
}

type createJobReq struct {
	Title  string                 `json:"title"`
	Rubric map[string]interface{} `json:"rubric"`
}

func (h *Handler) CreateJob(c *fiber.Ctx) error {
	var req createJobReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	var rubric domain.Rubric
	if req.Rubric != nil {
		decoded, err := decodeRubric(req.Rubric)
		if err != nil {
			return h.respondError(c, err)
		}
		rubric = decoded
	}
	created, err := h.jobs.Create(c.Context(), identityFrom(c), req.Title, rubric)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": created})
}

func (h *Handler) ListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobs.List(c.Context(), identityFrom(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

func (h *Handler) GetJob(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	job, err := h.jobs.Get(c.Context(), identityFrom(c), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

func (h *Handler) PublicJob(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	job, err := h.jobs.GetPublic(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

func (h *Handler) UpdateRubric(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	rubric, err := decodeRubric(payload)
	if err != nil {
		return h.respondError(c, err)
	}
	job, err := h.jobs.UpdateRubric(c.Context(), identityFrom(c), id, rubric)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

// Apply is the public submission endpoint: multipart form fields plus one
// resume file.
func (h *Handler) Apply(c *fiber.Ctx) error {
	jobID, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "resume file is required"})
	}
	data, err := readUpload(fileHeader)
	if err != nil {
		return h.respondError(c, domain.NewError(domain.CodeValidation, "could not read resume file", err))
	}

	sub := submissionFromForm(c)
	created, err := h.intake.Submit(c.Context(), jobID, sub, usecase.Resume{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"application": created})
}

func submissionFromForm(c *fiber.Ctx) model.Submission {
	sub := model.Submission{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("phone"),
		LinkedIn: c.FormValue("linkedinProfile"),
		GitHub:   c.FormValue("githubProfile"),
		Extra:    map[string]interface{}{},
	}
	if form, err := c.MultipartForm(); err == nil {
		for key, values := range form.Value {
			switch key {
			case "name", "email", "phone", "linkedinProfile", "githubProfile":
				continue
			}
			if len(values) == 1 {
				sub.Extra[key] = values[0]
			} else {
				sub.Extra[key] = values
			}
		}
	}
	return sub
}

func (h *Handler) Applicants(c *fiber.Ctx) error {
	jobID, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	applicants, err := h.review.ListApplicants(c.Context(), identityFrom(c), jobID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"applications": applicants})
}

func (h *Handler) Ranking(c *fiber.Ctx) error {
	jobID, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	ranking, err := h.review.Ranking(c.Context(), identityFrom(c), jobID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"ranking": ranking})
}

func (h *Handler) ApplicationDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	detail, err := h.review.GetDetail(c.Context(), identityFrom(c), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(detail)
}

func (h *Handler) SaveEvaluation(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	eval, err := decodeEvaluation(payload)
	if err != nil {
		return h.respondError(c, err)
	}
	if err := h.review.SaveEvaluation(c.Context(), identityFrom(c), id, eval); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "evaluation saved"})
}

type setHiredReq struct {
	Hired *bool `json:"hired"`
}

func (h *Handler) SetHired(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	var req setHiredReq
	if err := c.BodyParser(&req); err != nil || req.Hired == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hired (boolean) is required"})
	}
	if err := h.review.SetHired(c.Context(), identityFrom(c), id, *req.Hired); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "hired status updated"})
}

func (h *Handler) ResumeURL(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respondError(c, err)
	}
	url, err := h.review.ResumeURL(c.Context(), identityFrom(c), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"signedUrl": url})
}

// ServeBlob redeems a signed resume URL.
func (h *Handler) ServeBlob(c *fiber.Ctx) error {
	name := c.Params("name")
	exp, err := strconv.ParseInt(c.Query("exp"), 10, 64)
	if err != nil || !h.blobs.VerifySignature(name, exp, c.Query("sig")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid or expired link"})
	}
	data, err := h.blobs.Open(name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}
	return c.Send(data)
}

// decodeRubric and decodeEvaluation validate the raw payload against its
// JSON schema, then round-trip through encoding/json into the typed form.
func decodeRubric(payload map[string]interface{}) (domain.Rubric, error) {
	var rubric domain.Rubric
	if err := model.ValidateRubric(payload); err != nil {
		return rubric, domain.NewError(domain.CodeValidation, err.Error(), nil)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return rubric, err
	}
	if err := json.Unmarshal(raw, &rubric); err != nil {
		return rubric, domain.NewError(domain.CodeValidation, "malformed rubric", err)
	}
	return rubric, nil
}

func decodeEvaluation(payload map[string]interface{}) (domain.Evaluation, error) {
	var eval domain.Evaluation
	if err := model.ValidateEvaluation(payload); err != nil {
		return eval, domain.NewError(domain.CodeValidation, err.Error(), nil)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return eval, err
	}
	if err := json.Unmarshal(raw, &eval); err != nil {
		return eval, domain.NewError(domain.CodeValidation, "malformed evaluation", err)
	}
	return eval, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
