package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
	"pos-terminal/internal/pkg/middleware"
	catalogService "pos-terminal/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

type Handler struct {
	ctx            context.Context
	catalogService catalogService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, catalogService catalogService.IService) IHandler {
	return &Handler{
		ctx:            ctx,
		catalogService: catalogService,
	}
}

func token(c *gin.Context) string {
	session, _ := middleware.GetSession(c)
	return session.Auth.Token
}

// multipartEntity decodes the JSON form field named field into out and reads
// the optional "file" part.
func multipartEntity(c *gin.Context, field, folder string, out any) (*types.UploadFilesRes, *types.Response) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: field + " is required",
		})
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return nil, helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid " + field,
			Error:   err,
		})
	}

	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "Invalid file", Error: err})
	}
	if header.Size > maxImageSize {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "Image must be 5MB or smaller"})
	}

	file, err := header.Open()
	if err != nil {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "Invalid file", Error: err})
	}
	defer file.Close()

	image, err := helper.PrepareFileUploadPayload(types.UploadFile{
		File:         file,
		Header:       header,
		Path:         folder,
		AllowedTypes: helper.ImageTypes,
	})
	if errors.Is(err, helper.ErrUnsupportedFileType) {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "Unsupported image type", Error: err})
	}
	if err != nil {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to read file", Error: err})
	}
	return image, nil
}

// Categories godoc
// @Summary      List categories
// @Tags         Catalog
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  types.ResponseAPI{data=[]types.Category}
// @Router       /v1/categories [get]
func (h *Handler) Categories(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.catalogService.Categories(token(c)))
}

// AddCategory godoc
// @Summary      Add a category
// @Description  Multipart form: "category" holds the JSON body, "file" the optional image
// @Tags         Catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Session-ID  header    string  true   "Session id"
// @Param        category      formData  string  true   "types.CategoryRequest as JSON"
// @Param        file          formData  file    false  "Category image"
// @Success      201           {object}  types.ResponseAPI{data=types.Category}
// @Failure      400           {object}  types.ResponseAPI
// @Failure      403           {object}  types.ResponseAPI
// @Router       /v1/categories [post]
func (h *Handler) AddCategory(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req types.CategoryRequest
	image, res := multipartEntity(c, "category", "categories", &req)
	if res != nil {
		send(res)
		return
	}

	send(h.catalogService.AddCategory(token(c), &req, image))
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Tags         Catalog
// @Param        X-Session-ID  header  string  true  "Session id"
// @Param        category_id   path    string  true  "Category ID"
// @Success      204
// @Failure      403  {object}  types.ResponseAPI
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/categories/{category_id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.catalogService.DeleteCategory(token(c), c.Param("category_id")))
}

// Items godoc
// @Summary      List items
// @Description  Optionally narrowed to one category and/or a case-insensitive name search
// @Tags         Catalog
// @Produce      json
// @Param        X-Session-ID  header    string  true   "Session id"
// @Param        categoryId    query     string  false  "Category ID"
// @Param        search        query     string  false  "Name contains"
// @Success      200           {object}  types.ResponseAPI{data=[]types.Item}
// @Router       /v1/items [get]
func (h *Handler) Items(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var query catalogService.ItemQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid query",
			Error:   err,
		}))
		return
	}

	send(h.catalogService.Items(token(c), &query))
}

// AddItem godoc
// @Summary      Add an item
// @Description  Multipart form: "item" holds the JSON body, "file" the optional image
// @Tags         Catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Session-ID  header    string  true   "Session id"
// @Param        item          formData  string  true   "types.ItemRequest as JSON"
// @Param        file          formData  file    false  "Item image"
// @Success      201           {object}  types.ResponseAPI{data=types.Item}
// @Failure      400           {object}  types.ResponseAPI
// @Failure      403           {object}  types.ResponseAPI
// @Router       /v1/items [post]
func (h *Handler) AddItem(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req types.ItemRequest
	image, res := multipartEntity(c, "item", "items", &req)
	if res != nil {
		send(res)
		return
	}

	send(h.catalogService.AddItem(token(c), &req, image))
}

// DeleteItem godoc
// @Summary      Delete an item
// @Tags         Catalog
// @Param        X-Session-ID  header  string  true  "Session id"
// @Param        item_id       path    string  true  "Item ID"
// @Success      204
// @Failure      403  {object}  types.ResponseAPI
// @Router       /v1/items/{item_id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.catalogService.DeleteItem(token(c), c.Param("item_id")))
}
