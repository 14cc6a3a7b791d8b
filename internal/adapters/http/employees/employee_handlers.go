// Package employees содержит HTTP обработчики справочника сотрудников.
package employees

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"staffdir/internal/app/dto"
	"staffdir/internal/domain/entities"
	domain "staffdir/internal/domain/services"
	"staffdir/internal/ports/api"
	svc "staffdir/internal/ports/services"
	"staffdir/pkg/logger"
)

// Константы для логирования и сообщений ответов.
const (
	LogHandlerSearch = "employee handler: search"
	LogHandlerCreate = "employee handler: create"
	LogHandlerList   = "employee handler: list"
	LogHandlerGet    = "employee handler: get"
	LogHandlerUpdate = "employee handler: update"
	LogHandlerDelete = "employee handler: delete"

	ErrorInvalidRequest = "invalid request"

	MsgEmployeeNotFound  = "Employee not found"
	MsgEmployeeDeleted   = "Employee deleted"
	MsgSearchFailed      = "Search failed"
	MsgCreateFailed      = "Could not create employee"
	MsgFetchManyFailed   = "Could not fetch employees"
	MsgFetchOneFailed    = "Could not fetch employee"
	MsgUpdateFailed      = "Could not update employee"
	MsgDeleteFailed      = "Could not delete employee"
	MsgOnlyImagesAllowed = "Only image uploads are allowed"
	MsgFileTooLarge      = "Uploaded file exceeds size limit"
)

// Имя поля multipart-формы с файлом аватара.
const avatarField = "avatar"

// Handler содержит HTTP обработчики справочника сотрудников.
type Handler struct {
	employeeService api.EmployeeUseCase
	fileStorage     svc.FileStorage
}

// NewHandler создает новый экземпляр обработчика сотрудников.
func NewHandler(employeeService api.EmployeeUseCase, fileStorage svc.FileStorage) *Handler {
	return &Handler{
		employeeService: employeeService,
		fileStorage:     fileStorage,
	}
}

// Search обрабатывает поиск по отделу и должности.
func (h *Handler) Search(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSearch)

	filter := entities.EmployeeFilter{
		Department: ctx.Query("department"),
		Position:   ctx.Query("position"),
	}

	employees, err := h.employeeService.Search(requestCtx, filter)
	if err != nil {
		log.Error(requestCtx, MsgSearchFailed, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgSearchFailed,
			"error":   err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewEmployeeListResponse(employees))
}

// Create обрабатывает создание записи из multipart-формы с необязательным аватаром.
// Поля формы проверяются до приема файла, чтобы отклоненные запросы
// не оставляли осиротевших файлов на диске.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	form, err := ctx.MultipartForm()
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": ErrorInvalidRequest,
		})
	}

	employeeForm := dto.EmployeeFormFromValues(form.Value)
	if fieldErrs := employeeForm.Validate(false); len(fieldErrs) > 0 {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrs,
		})
	}

	employee := employeeForm.ToEmployee()

	avatarPath, err := h.saveAvatar(ctx)
	if err != nil {
		return h.uploadErrorResponse(ctx, err)
	}
	employee.Avatar = avatarPath

	created, err := h.employeeService.Create(requestCtx, employee)
	if err != nil {
		log.Error(requestCtx, MsgCreateFailed, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgCreateFailed,
			"error":   err.Error(),
		})
	}

	return ctx.Status(http.StatusCreated).JSON(dto.NewEmployeeResponse(created))
}

// List возвращает все записи, новые первыми.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerList)

	employees, err := h.employeeService.List(requestCtx)
	if err != nil {
		log.Error(requestCtx, MsgFetchManyFailed, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgFetchManyFailed,
			"error":   err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewEmployeeListResponse(employees))
}

// Get возвращает запись по ID.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGet)

	employee, err := h.employeeService.Get(requestCtx, ctx.Params("id"))
	if err != nil {
		if errors.Is(err, entities.ErrEmployeeNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"message": MsgEmployeeNotFound,
			})
		}
		log.Error(requestCtx, MsgFetchOneFailed, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgFetchOneFailed,
			"error":   err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewEmployeeResponse(employee))
}

// Update обрабатывает частичное обновление записи из multipart-формы.
// Переданные поля заменяют прежние значения, остальные не изменяются.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	form, err := ctx.MultipartForm()
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": ErrorInvalidRequest,
		})
	}

	employeeForm := dto.EmployeeFormFromValues(form.Value)
	if fieldErrs := employeeForm.Validate(true); len(fieldErrs) > 0 {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrs,
		})
	}

	update := employeeForm.ToUpdate()

	avatarPath, err := h.saveAvatar(ctx)
	if err != nil {
		return h.uploadErrorResponse(ctx, err)
	}
	if avatarPath != "" {
		update.Avatar = &avatarPath
	}

	updated, err := h.employeeService.Update(requestCtx, ctx.Params("id"), update)
	if err != nil {
		if errors.Is(err, entities.ErrEmployeeNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"message": MsgEmployeeNotFound,
			})
		}
		log.Error(requestCtx, MsgUpdateFailed, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgUpdateFailed,
			"error":   err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewEmployeeResponse(updated))
}

// Delete удаляет запись. Файл аватара остается на диске.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	if err := h.employeeService.Delete(requestCtx, ctx.Params("id")); err != nil {
		if errors.Is(err, entities.ErrEmployeeNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"message": MsgEmployeeNotFound,
			})
		}
		log.Error(requestCtx, MsgDeleteFailed, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgDeleteFailed,
			"error":   err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": MsgEmployeeDeleted,
	})
}

// saveAvatar сохраняет файл аватара, если он передан в форме.
// Отсутствие файла не является ошибкой.
func (h *Handler) saveAvatar(ctx fiber.Ctx) (string, error) {
	fileHeader, err := ctx.FormFile(avatarField)
	if err != nil || fileHeader == nil {
		return "", nil
	}
	return h.fileStorage.Save(ctx.Context(), fileHeader)
}

// uploadErrorResponse преобразует ошибки хранилища файлов в HTTP статусы.
func (h *Handler) uploadErrorResponse(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return ctx.Status(http.StatusUnsupportedMediaType).JSON(fiber.Map{
			"message": MsgOnlyImagesAllowed,
		})
	case errors.Is(err, domain.ErrFileTooLarge):
		return ctx.Status(http.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"message": MsgFileTooLarge,
		})
	default:
		logger.Log(ctx.Context()).Error(ctx.Context(), "failed to store uploaded file", zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Unexpected error",
			"error":   err.Error(),
		})
	}
}
