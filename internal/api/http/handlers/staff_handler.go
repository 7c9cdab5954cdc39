package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/staffdesk/staff-service/internal/api/dto"
	"github.com/staffdesk/staff-service/internal/auth"
	"github.com/staffdesk/staff-service/internal/domain"
	"github.com/staffdesk/staff-service/internal/service"
	apperrors "github.com/staffdesk/staff-service/pkg/util/errorutil"
)

// StaffManager is the capability set the staff endpoints delegate to.
type StaffManager interface {
	FindAll(ctx context.Context) ([]domain.StaffMember, error)
	FindOne(ctx context.Context, id int64) (*domain.StaffMember, error)
	Create(ctx context.Context, input service.SignupInput) (*domain.StaffMember, error)
	Update(ctx context.Context, id int64, patch domain.StaffPatch) (*domain.StaffMember, error)
	Remove(ctx context.Context, id int64) error
}

// StaffHandler exposes staff CRUD endpoints.
type StaffHandler struct {
	staff StaffManager
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staff StaffManager) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	list, err := h.staff.FindAll(requestContext(c))
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewStaffResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	id, err := staffIDParam(c)
	if err != nil {
		return err
	}
	staff, err := h.staff.FindOne(requestContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(staff)})
}

// Create handles POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}
	staff, err := h.staff.Create(requestContext(c), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStaffResponse(staff)})
}

// Update handles PATCH /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	id, err := staffIDParam(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}
	patch := req.Patch()
	if patch.Empty() {
		return apperrors.NewValidationError("no fields to update", nil)
	}
	staff, err := h.staff.Update(requestContext(c), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(staff)})
}

// Delete handles DELETE /staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id, err := staffIDParam(c)
	if err != nil {
		return err
	}
	if err := h.staff.Remove(requestContext(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted", "id": id}})
}

func staffIDParam(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid staff id", map[string]any{"id": raw})
	}
	return id, nil
}

// requestContext carries the request deadline and the acting staff ID into the service layer.
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Staff != nil {
		ctx = service.ContextWithActor(ctx, principal.Staff.ID)
	}
	return ctx
}
