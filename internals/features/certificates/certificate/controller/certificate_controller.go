// file: internals/features/certificates/certificate/controller/certificate_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certDTO "prestasiku_backend/internals/features/certificates/certificate/dto"
	certModel "prestasiku_backend/internals/features/certificates/certificate/model"
	certService "prestasiku_backend/internals/features/certificates/certificate/service"
	dictService "prestasiku_backend/internals/features/dictionaries/dictionary/service"
	extractorService "prestasiku_backend/internals/features/extraction/extractor/service"
	fileService "prestasiku_backend/internals/features/files/file/service"
	helper "prestasiku_backend/internals/helpers"
	helperAuth "prestasiku_backend/internals/helpers/auth"
)

// timeNow is swappable in tests that exercise the deadline gate.
var timeNow = time.Now

type CertificateController struct {
	DB        *gorm.DB
	Extractor *extractorService.Extractor
}

func NewCertificateController(db *gorm.DB) *CertificateController {
	return &CertificateController{
		DB:        db,
		Extractor: extractorService.NewExtractor(db),
	}
}

func (ctl *CertificateController) actor(c *fiber.Ctx) (*helperAuth.Actor, error) {
	a, err := helperAuth.GetActor(c)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func mapServiceError(c *fiber.Ctx, err error) error {
	var dl *certService.DeadlineError
	switch {
	case errors.As(err, &dl):
		return helper.JsonError(c, fiber.StatusForbidden, dl.Error())
	case errors.Is(err, certService.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Certificate not found")
	case errors.Is(err, certService.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, "Operation not permitted")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

/* =======================================================
   POST /api/certificates/upload — upload + extract
======================================================= */

// Upload stores a certificate image and returns prefill fields. An
// identical re-upload by the same submitter short-circuits to the prior
// row's values without touching disk or the vision API.
func (ctl *CertificateController) Upload(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if err := certService.CheckDeadline(ctl.DB, actor, timeNow()); err != nil {
		return mapServiceError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file upload")
	}
	if !fileService.IsAllowedExt(fh.Filename) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unsupported file type")
	}
	data, err := fileService.ReadUpload(fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unreadable file upload")
	}
	uploadMD5 := fileService.MD5Hex(data)

	// Dedup on the uploaded bytes, scoped per submitter.
	if dup, derr := certService.FindDuplicate(ctl.DB, actor, uploadMD5); derr == nil && dup != nil {
		resp := certDTO.UploadResponse{
			FilePath:         dup.CertFilePath,
			FileMD5:          uploadMD5,
			ExtractionMethod: "quick_upload",
			QuickUpload:      true,
			Fields:           prefillFromModel(dup),
		}
		return helper.JsonOK(c, "Duplicate upload detected, reusing previous extraction", resp)
	}

	saved, err := fileService.SaveCertificate(ctl.DB, actor.UserID, actor.AccountID, actor.Name, data, fh.Filename)
	if err != nil {
		if errors.Is(err, fileService.ErrUnsupportedFormat) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unsupported image format")
		}
		log.Printf("❌ certificate upload failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store upload")
	}

	fields, outcome, err := ctl.Extractor.Extract(data)
	if err != nil {
		// Only the no-credential case reaches here.
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "No extraction credential configured")
	}
	advisorID := applyRolePrefill(actor, &fields)

	resp := certDTO.UploadResponse{
		FilePath:         saved.Record.FilePath,
		FileMD5:          uploadMD5,
		ExtractionMethod: string(outcome),
		QuickUpload:      false,
		Fields:           prefillFromFields(fields, advisorID),
	}
	return helper.JsonOK(c, "Upload processed", resp)
}

// applyRolePrefill overlays the logged-in identity on the extracted
// fields. A student always submits under their own account id; a
// teacher is always the advisor of record. Other extracted values are
// only filled when the model left them empty.
func applyRolePrefill(actor *helperAuth.Actor, f *extractorService.Fields) (advisorID string) {
	switch {
	case actor.IsStudent():
		f.StudentID = actor.AccountID
		if f.StudentName == "" {
			f.StudentName = actor.Name
		}
		if f.StudentDepartment == "" {
			f.StudentDepartment = actor.Department
		}
	case actor.IsTeacher():
		f.Advisor = actor.Name
		advisorID = actor.AccountID
	}
	return advisorID
}

func prefillFromFields(f extractorService.Fields, advisorID string) map[string]interface{} {
	return map[string]interface{}{
		"student_id":         f.StudentID,
		"student_name":       f.StudentName,
		"student_department": f.StudentDepartment,
		"competition_name":   f.CompetitionName,
		"award_category":     f.AwardCategory,
		"award_level":        f.AwardLevel,
		"competition_type":   f.CompetitionType,
		"organizer":          f.Organizer,
		"award_date":         f.AwardDate,
		"advisor":            f.Advisor,
		"advisor_id":         advisorID,
	}
}

func prefillFromModel(m *certModel.CertificateModel) map[string]interface{} {
	resp := certDTO.FromCertificateModel(m)
	return map[string]interface{}{
		"student_id":         resp.StudentID,
		"student_name":       resp.StudentName,
		"student_department": resp.StudentDepartment,
		"competition_name":   resp.CompetitionName,
		"award_category":     resp.AwardCategory,
		"award_level":        resp.AwardLevel,
		"competition_type":   resp.CompetitionType,
		"organizer":          resp.Organizer,
		"award_date":         resp.AwardDate,
		"advisor":            resp.Advisor,
		"advisor_id":         resp.AdvisorID,
	}
}

/* =======================================================
   POST /api/certificates — create (draft or submit)
======================================================= */

func (ctl *CertificateController) Create(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req struct {
		certDTO.CertificateFormRequest
		FilePath         string `json:"file_path" form:"file_path" validate:"required"`
		FileMD5          string `json:"file_md5" form:"file_md5" validate:"required,len=32,hexadecimal"`
		ExtractionMethod string `json:"extraction_method" form:"extraction_method" validate:"omitempty,max=20"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	// The deadline gate runs before validation so a late submitter is
	// told about the deadline, not about field errors.
	if err := certService.CheckDeadline(ctl.DB, actor, timeNow()); err != nil {
		return mapServiceError(c, err)
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}
	if !fileService.ExistsOnDisk(req.FilePath) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Uploaded file is missing, please upload again")
	}

	m := &certModel.CertificateModel{}
	req.ApplyTo(m)
	if !actor.IsStudent() {
		m.CertStandardScore = req.StandardScore
		m.CertContribution = req.Contribution
	}

	in := certService.CreateInput{
		FilePath:         req.FilePath,
		FileMD5:          req.FileMD5,
		ExtractionMethod: req.ExtractionMethod,
		Submit:           req.Action == "submit",
	}
	if err := certService.Create(ctl.DB, actor, m, in); err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "Certificate saved", certDTO.FromCertificateModel(m))
}

/* =======================================================
   PUT /api/certificates/:id — edit (draft or submit)
======================================================= */

func (ctl *CertificateController) Update(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req certDTO.CertificateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	if err := certService.CheckDeadline(ctl.DB, actor, timeNow()); err != nil {
		return mapServiceError(c, err)
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	m, err := certService.Update(ctl.DB, actor, c.Params("id"), req.Action == "submit", func(m *certModel.CertificateModel) {
		req.ApplyTo(m)
		if !actor.IsStudent() {
			if req.StandardScore != nil {
				m.CertStandardScore = req.StandardScore
			}
			if req.Contribution != nil {
				m.CertContribution = req.Contribution
			}
		}
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Certificate updated", certDTO.FromCertificateModel(m))
}

/* =======================================================
   POST /api/certificates/:id/approve
======================================================= */

func (ctl *CertificateController) Approve(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// An empty body is fine here: scoring values are optional.
	var req certDTO.ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		req = certDTO.ApproveRequest{}
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	m, err := certService.Approve(ctl.DB, actor, c.Params("id"), req.StandardScore, req.Contribution)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Certificate approved", certDTO.FromCertificateModel(m))
}

/* =======================================================
   GET /api/certificates, GET /api/certificates/:id
======================================================= */

func (ctl *CertificateController) List(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	p := helper.ResolvePaging(c, 20, 100)
	f := certService.ListFilter{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Keyword:    c.Query("q"),
	}
	rows, total, err := certService.List(ctl.DB, actor, f, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list certificates")
	}
	out := make([]certDTO.CertificateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, certDTO.FromCertificateModel(&rows[i]))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPagination(total, p))
}

func (ctl *CertificateController) Get(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	m, err := certService.Get(ctl.DB, actor, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", certDTO.FromCertificateModel(m))
}

/* =======================================================
   GET /api/certificates/:id/file
======================================================= */

// File streams the stored certificate image, behind the same
// visibility gate as the row itself.
func (ctl *CertificateController) File(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	m, err := certService.Get(ctl.DB, actor, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	abs, err := fileService.ResolvePath(m.CertFilePath)
	if err != nil || !fileService.ExistsOnDisk(m.CertFilePath) {
		return helper.JsonError(c, fiber.StatusNotFound, "File not found")
	}
	return c.SendFile(abs)
}

/* =======================================================
   DELETE /api/certificates/:id
======================================================= */

func (ctl *CertificateController) Delete(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if err := certService.Delete(ctl.DB, actor, c.Params("id")); err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Certificate deleted", fiber.Map{"id": c.Params("id")})
}

/* =======================================================
   GET /api/certificates/options — form option lists
======================================================= */

// FormOptions returns the dictionary-backed dropdown values for the
// submission form. Scoring lists are reviewer-only.
func (ctl *CertificateController) FormOptions(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	opts, err := dictService.CertificateOptions(ctl.DB, !actor.IsStudent())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load form options")
	}
	return helper.JsonOK(c, "OK", opts)
}

/* =======================================================
   GET /api/certificates/stats
======================================================= */

func (ctl *CertificateController) Stats(c *fiber.Ctx) error {
	actor, err := ctl.actor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	counts, err := certService.StatusCounts(ctl.DB, actor)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	body := fiber.Map{"total": total, "by_status": counts}

	// Breakdown charts are reviewer dashboard material.
	if actor.IsSecretary() || actor.IsAdmin() {
		for _, group := range []string{"department", "category", "level"} {
			byGroup, err := certService.GroupCounts(ctl.DB, actor, group)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute statistics")
			}
			body["by_"+group] = byGroup
		}
	}
	return helper.JsonOK(c, "OK", body)
}
