package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"infocomm/internal/common"
	"infocomm/internal/services"
)

// ProductHandlers covers the write side of the catalog plus image uploads.
type ProductHandlers struct {
	productSvc services.ProductService
	minioSvc   services.MinioService
	bucket     string
}

func NewProductHandlers(productSvc services.ProductService, minioSvc services.MinioService, bucket string) *ProductHandlers {
	return &ProductHandlers{
		productSvc: productSvc,
		minioSvc:   minioSvc,
		bucket:     bucket,
	}
}

func productID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}

func (h *ProductHandlers) Create(c echo.Context) error {
	var input services.ProductInput
	if err := c.Bind(&input); err != nil {
		return common.RespondValidationError(c, "invalid request body")
	}

	product, err := h.productSvc.Create(c.Request().Context(), input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandlers) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.productSvc.Get(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var input services.ProductInput
	if err := c.Bind(&input); err != nil {
		return common.RespondValidationError(c, "invalid request body")
	}

	product, err := h.productSvc.Update(c.Request().Context(), id, input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.productSvc.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage accepts a multipart file and stores it against the product.
func (h *ProductHandlers) UploadImage(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.RespondValidationError(c, "image file is required")
	}

	src, err := file.Open()
	if err != nil {
		return common.RespondValidationError(c, "could not read image file")
	}
	defer src.Close()

	image, err := h.productSvc.AttachImage(c.Request().Context(), id, file.Filename, src, file.Size)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, image)
}

// ListImages returns image records with short-lived download URLs.
func (h *ProductHandlers) ListImages(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	images, err := h.productSvc.ListImages(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}

	type imageWithURL struct {
		ID  uuid.UUID `json:"id"`
		URL string    `json:"url"`
	}

	out := make([]imageWithURL, 0, len(images))
	for _, img := range images {
		url, err := h.minioSvc.GetPresignedURL(h.bucket, img.ObjectKey, 15*time.Minute)
		if err != nil {
			continue // skip images whose object is unreachable
		}
		out = append(out, imageWithURL{ID: img.ID, URL: url})
	}
	return c.JSON(http.StatusOK, out)
}
