package handlers

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/internal/api/presenters"
	"MealHive-Backend/pkg/grocery"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GroceryHandler interface {
		CreateGroceryList(c *fiber.Ctx) error
		GetGroceryLists(c *fiber.Ctx) error
		AddManualItem(c *fiber.Ctx) error
		ToggleItemChecked(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		ShareList(c *fiber.Ctx) error
		SyncListWithPantry(c *fiber.Ctx) error
		RebuildFromMealPlan(c *fiber.Ctx) error
		MarkItemPurchased(c *fiber.Ctx) error
	}

	groceryHandler struct {
		groceryService grocery.GroceryService
		validator      *validator.Validate
	}
)

func NewGroceryHandler(groceryService grocery.GroceryService, validator *validator.Validate) GroceryHandler {
	return &groceryHandler{
		groceryService: groceryService,
		validator:      validator,
	}
}

func statusForGroceryError(err error) int {
	switch {
	case errors.Is(err, domain.ErrGroceryListNotFound),
		errors.Is(err, domain.ErrGroceryItemNotFound),
		errors.Is(err, domain.ErrMealPlanNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedAccess),
		errors.Is(err, domain.ErrNotFamilyMember):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

func (h *groceryHandler) CreateGroceryList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateGroceryListRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateGroceryList, err)
	}

	res, err := h.groceryService.CreateGroceryList(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedCreateGroceryList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateGroceryList)
}

func (h *groceryHandler) GetGroceryLists(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	familyID := c.Query("family_id", "")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	lists, count, err := h.groceryService.GetGroceryLists(c.Context(), userID, familyID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedGetGroceryLists, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": lists,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetGroceryLists)
}

func (h *groceryHandler) AddManualItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")
	req := new(domain.AddGroceryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddGroceryItem, err)
	}

	res, err := h.groceryService.AddManualItem(c.Context(), listID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedAddGroceryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddGroceryItem)
}

func (h *groceryHandler) ToggleItemChecked(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("item_id")

	res, err := h.groceryService.ToggleItemChecked(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedToggleGroceryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleGroceryItem)
}

func (h *groceryHandler) DeleteItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("item_id")

	if err := h.groceryService.DeleteItem(c.Context(), itemID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedDeleteGroceryItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteGroceryItem)
}

func (h *groceryHandler) ShareList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")
	req := new(domain.ShareGroceryListRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareGroceryList, err)
	}

	if err := h.groceryService.ShareList(c.Context(), listID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedShareGroceryList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessShareGroceryList)
}

func (h *groceryHandler) SyncListWithPantry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")

	res, err := h.groceryService.SyncListWithPantry(c.Context(), listID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedSyncGroceryList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSyncGroceryList)
}

func (h *groceryHandler) RebuildFromMealPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	mealPlanID := c.Params("meal_plan_id")

	res, err := h.groceryService.RebuildFromMealPlan(c.Context(), mealPlanID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedRebuildList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRebuildList)
}

func (h *groceryHandler) MarkItemPurchased(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("item_id")

	res, err := h.groceryService.MarkItemPurchased(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForGroceryError(err), domain.MessageFailedMarkPurchased, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMarkPurchased)
}
