package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"restaurant_backend/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	productService services.ProductService
	logger         *logrus.Logger
}

func NewProductHandler(productService services.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, logger: logger}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		respondWithError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid price")
		return
	}

	input := services.CreateProductInput{
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
		Price:    price,
		Status:   c.PostForm("status") == "true",
	}

	image, err := h.readImageFile(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Failed to read image")
		return
	}
	input.Image = image

	product, err := h.productService.Create(input)
	if err != nil {
		respondCrudError(c, h.logger, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var input services.UpdateProductInput
	if title, ok := c.GetPostForm("title"); ok {
		input.Title = &title
	}
	if category, ok := c.GetPostForm("category"); ok {
		input.Category = &category
	}
	if rawPrice, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "Invalid price")
			return
		}
		input.Price = &price
	}
	if rawStatus, ok := c.GetPostForm("status"); ok {
		status := rawStatus == "true"
		input.Status = &status
	}

	image, err := h.readImageFile(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Failed to read image")
		return
	}
	input.Image = image

	product, err := h.productService.Update(id, input)
	if err != nil {
		respondCrudError(c, h.logger, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.productService.Delete(id); err != nil {
		respondCrudError(c, h.logger, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// readImageFile pulls the optional "image" multipart field into memory.
// A missing field is not an error.
func (h *ProductHandler) readImageFile(c *gin.Context) (*services.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fileHeader == nil {
		return nil, nil
	}
	return readUpload(fileHeader)
}

func readUpload(fileHeader *multipart.FileHeader) (*services.ImageUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &services.ImageUpload{Filename: fileHeader.Filename, Data: data}, nil
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
