package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/boutique-ecom/internal/httpx"
	"github.com/MikeMC777/boutique-ecom/internal/product"
)

// catalogError maps product package errors onto the admin response shape.
func catalogError(c *gin.Context, err error, log logrus.FieldLogger, fallback string) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		httpx.Fail(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, product.ErrCollectionNotFound):
		httpx.Fail(c, http.StatusNotFound, "Collection not found")
	case errors.Is(err, product.ErrTagNotFound):
		httpx.Fail(c, http.StatusNotFound, "Tag not found")
	default:
		log.WithError(err).Error(fallback)
		httpx.Fail(c, http.StatusInternalServerError, fallback)
	}
}

//
// ===== products =====
//

// adminListProductsHandler godoc
// @Summary      List every product regardless of status
// @Tags         products
// @Produce      json
// @Success      200  {object}  adminProductsResponse
// @Router       /api/admin/products [get]
func adminListProductsHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ps, err := adm.ListProducts(c.Request.Context())
		if err != nil {
			catalogError(c, err, log, "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, adminProductsResponse{Success: true, Products: ps})
	}
}

// adminGetProductHandler godoc
// @Summary      Get a product with its children
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "product id"
// @Success      200  {object}  adminProductResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/products/{id} [get]
func adminGetProductHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := adm.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			catalogError(c, err, log, "Failed to fetch product")
			return
		}
		c.JSON(http.StatusOK, adminProductResponse{Success: true, Product: p})
	}
}

// createProductHandler godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  product.ProductRequest  true  "product"
// @Success      201  {object}  adminProductResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/admin/products [post]
func createProductHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.ProductRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid product", err.Error())
			return
		}
		p, err := adm.CreateProduct(c.Request.Context(), req)
		if err != nil {
			catalogError(c, err, log, "Failed to create product")
			return
		}
		c.JSON(http.StatusCreated, adminProductResponse{Success: true, Product: p})
	}
}

// updateProductHandler godoc
// @Summary      Replace a product and its images, sizes, colors, collections and tags
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "product id"
// @Param        body  body  product.ProductRequest  true  "product"
// @Success      200  {object}  adminProductResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/products/{id} [put]
func updateProductHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.ProductRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid product", err.Error())
			return
		}
		p, err := adm.UpdateProduct(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			catalogError(c, err, log, "Failed to update product")
			return
		}
		c.JSON(http.StatusOK, adminProductResponse{Success: true, Product: p})
	}
}

// deleteProductHandler godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "product id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/products/{id} [delete]
func deleteProductHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := adm.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			catalogError(c, err, log, "Failed to delete product")
			return
		}
		c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

//
// ===== collections =====
//

// adminListCollectionsHandler godoc
// @Summary      List collections, active or not
// @Tags         collections
// @Produce      json
// @Success      200  {object}  adminCollectionsResponse
// @Router       /api/admin/collections [get]
func adminListCollectionsHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs, err := adm.ListCollections(c.Request.Context())
		if err != nil {
			catalogError(c, err, log, "Failed to fetch collections")
			return
		}
		c.JSON(http.StatusOK, adminCollectionsResponse{Success: true, Collections: cs})
	}
}

// adminGetCollectionHandler godoc
// @Summary      Get a collection
// @Tags         collections
// @Produce      json
// @Param        id   path  string  true  "collection id"
// @Success      200  {object}  adminCollectionResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/collections/{id} [get]
func adminGetCollectionHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		col, err := adm.GetCollection(c.Request.Context(), c.Param("id"))
		if err != nil {
			catalogError(c, err, log, "Failed to fetch collection")
			return
		}
		c.JSON(http.StatusOK, adminCollectionResponse{Success: true, Collection: col})
	}
}

// createCollectionHandler godoc
// @Summary      Create a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        body  body  product.CollectionRequest  true  "collection"
// @Success      201  {object}  adminCollectionResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/admin/collections [post]
func createCollectionHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CollectionRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid collection", err.Error())
			return
		}
		col, err := adm.CreateCollection(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, product.ErrSlugTaken) {
				httpx.Fail(c, http.StatusBadRequest, "A collection with this slug already exists")
				return
			}
			catalogError(c, err, log, "Failed to create collection")
			return
		}
		c.JSON(http.StatusCreated, adminCollectionResponse{Success: true, Collection: col})
	}
}

// updateCollectionHandler godoc
// @Summary      Replace a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "collection id"
// @Param        body  body  product.CollectionRequest  true  "collection"
// @Success      200  {object}  adminCollectionResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/collections/{id} [put]
func updateCollectionHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CollectionRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid collection", err.Error())
			return
		}
		col, err := adm.UpdateCollection(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			if errors.Is(err, product.ErrSlugTaken) {
				httpx.Fail(c, http.StatusBadRequest, "A collection with this slug already exists")
				return
			}
			catalogError(c, err, log, "Failed to update collection")
			return
		}
		c.JSON(http.StatusOK, adminCollectionResponse{Success: true, Collection: col})
	}
}

// patchCollectionHandler godoc
// @Summary      Toggle visibility or change the display order of a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "collection id"
// @Param        body  body  product.CollectionPatch  true  "fields to change"
// @Success      200  {object}  adminCollectionResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/collections/{id} [patch]
func patchCollectionHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CollectionPatch
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid collection", err.Error())
			return
		}
		if req.IsActive == nil && req.DisplayOrder == nil {
			httpx.Fail(c, http.StatusBadRequest, "Nothing to update")
			return
		}
		col, err := adm.PatchCollection(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			catalogError(c, err, log, "Failed to update collection")
			return
		}
		c.JSON(http.StatusOK, adminCollectionResponse{Success: true, Collection: col})
	}
}

// deleteCollectionHandler godoc
// @Summary      Delete a collection
// @Tags         collections
// @Produce      json
// @Param        id   path  string  true  "collection id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/collections/{id} [delete]
func deleteCollectionHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := adm.DeleteCollection(c.Request.Context(), c.Param("id")); err != nil {
			catalogError(c, err, log, "Failed to delete collection")
			return
		}
		c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

//
// ===== tags =====
//

// listTagsHandler godoc
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Success      200  {object}  tagsResponse
// @Router       /api/admin/tags [get]
func listTagsHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ts, err := adm.ListTags(c.Request.Context())
		if err != nil {
			catalogError(c, err, log, "Failed to fetch tags")
			return
		}
		c.JSON(http.StatusOK, tagsResponse{Success: true, Tags: ts})
	}
}

// getTagHandler godoc
// @Summary      Get a tag
// @Tags         tags
// @Produce      json
// @Param        id   path  string  true  "tag id"
// @Success      200  {object}  tagResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/tags/{id} [get]
func getTagHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := adm.GetTag(c.Request.Context(), c.Param("id"))
		if err != nil {
			catalogError(c, err, log, "Failed to fetch tag")
			return
		}
		c.JSON(http.StatusOK, tagResponse{Success: true, Tag: t})
	}
}

// createTagHandler godoc
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        body  body  product.TagRequest  true  "tag"
// @Success      201  {object}  tagResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/admin/tags [post]
func createTagHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.TagRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid tag", err.Error())
			return
		}
		t, err := adm.CreateTag(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, product.ErrSlugTaken) {
				httpx.Fail(c, http.StatusBadRequest, "A tag with this slug already exists")
				return
			}
			catalogError(c, err, log, "Failed to create tag")
			return
		}
		c.JSON(http.StatusCreated, tagResponse{Success: true, Tag: t})
	}
}

// updateTagHandler godoc
// @Summary      Replace a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "tag id"
// @Param        body  body  product.TagRequest  true  "tag"
// @Success      200  {object}  tagResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/tags/{id} [put]
func updateTagHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.TagRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid tag", err.Error())
			return
		}
		t, err := adm.UpdateTag(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			if errors.Is(err, product.ErrSlugTaken) {
				httpx.Fail(c, http.StatusBadRequest, "A tag with this slug already exists")
				return
			}
			catalogError(c, err, log, "Failed to update tag")
			return
		}
		c.JSON(http.StatusOK, tagResponse{Success: true, Tag: t})
	}
}

// deleteTagHandler godoc
// @Summary      Delete a tag
// @Tags         tags
// @Produce      json
// @Param        id   path  string  true  "tag id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/tags/{id} [delete]
func deleteTagHandler(adm *product.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := adm.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
			catalogError(c, err, log, "Failed to delete tag")
			return
		}
		c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

type adminProductsResponse struct {
	Success  bool              `json:"success"`
	Products []product.Product `json:"products"`
}

type adminProductResponse struct {
	Success bool             `json:"success"`
	Product *product.Product `json:"product"`
}

type adminCollectionsResponse struct {
	Success     bool                 `json:"success"`
	Collections []product.Collection `json:"collections"`
}

type adminCollectionResponse struct {
	Success    bool                `json:"success"`
	Collection *product.Collection `json:"collection"`
}

type tagsResponse struct {
	Success bool          `json:"success"`
	Tags    []product.Tag `json:"tags"`
}

type tagResponse struct {
	Success bool         `json:"success"`
	Tag     *product.Tag `json:"tag"`
}
