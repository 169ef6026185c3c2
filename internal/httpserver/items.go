package httpserver

import (
	"io"
	"net/http"

	"applestore-clone/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type itemRequest struct {
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         int    `json:"price" binding:"gte=0"`
	Description   string `json:"description"`
	StockQuantity int    `json:"stockQuantity" binding:"gte=0"`
	ImageURL      string `json:"imageURL"`
	Color         string `json:"color"`
	IsAvailable   *bool  `json:"isAvailable"`
}

func (r itemRequest) toItem() domain.Item {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return domain.Item{
		ItemID:        r.ItemID,
		Name:          r.Name,
		Category:      r.Category,
		Price:         r.Price,
		Description:   r.Description,
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
		Color:         r.Color,
		IsAvailable:   available,
	}
}

type itemResponse struct {
	domain.Item
	FormattedPrice string `json:"formattedPrice"`
}

type itemMutationResponse struct {
	Item   itemResponse `json:"item"`
	Synced bool         `json:"synced"`
}

type filterRequest struct {
	Category string        `json:"category" binding:"required"`
	Items    []itemRequest `json:"items" binding:"dive"`
}

func toItemResponse(item domain.Item) itemResponse {
	return itemResponse{Item: item, FormattedPrice: item.FormattedPrice()}
}

func toItemResponses(items []domain.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

type itemHandlers struct {
	logger *zap.Logger
}

func (h *itemHandlers) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": toItemResponses(catalogFrom(c).Items())})
}

func (h *itemHandlers) load(c *gin.Context) {
	store := catalogFrom(c)
	if !store.Load(c.Request.Context()) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toItemResponses(store.Items())})
}

// add keeps the item in the list even when the remote write fails; synced tells the two apart.
func (h *itemHandlers) add(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item", "detail": err.Error()})
		return
	}
	item := req.toItem()
	if item.ItemID == "" {
		item.ItemID = domain.NewItemID()
	}

	synced := catalogFrom(c).Add(c.Request.Context(), item, userFrom(c).ID)
	status := http.StatusCreated
	if !synced {
		status = http.StatusBadGateway
	}
	c.JSON(status, itemMutationResponse{Item: toItemResponse(item), Synced: synced})
}

func (h *itemHandlers) update(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item", "detail": err.Error()})
		return
	}
	item := req.toItem()
	item.ItemID = c.Param("itemId")

	synced := catalogFrom(c).Update(c.Request.Context(), item)
	status := http.StatusOK
	if !synced {
		status = http.StatusBadGateway
	}
	c.JSON(status, itemMutationResponse{Item: toItemResponse(item), Synced: synced})
}

func (h *itemHandlers) remove(c *gin.Context) {
	store := catalogFrom(c)
	itemID := c.Param("itemId")
	target := domain.Item{ItemID: itemID}
	for _, it := range store.Items() {
		if it.ItemID == itemID {
			target = it
			break
		}
	}

	if !store.Delete(c.Request.Context(), target, userFrom(c).ID) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not delete item"})
		return
	}
	c.Status(http.StatusNoContent)
}

// filter narrows the list to one category. Without items in the body the current list is used.
func (h *itemHandlers) filter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required and items must be valid"})
		return
	}

	store := catalogFrom(c)
	source := store.Items()
	if req.Items != nil {
		source = make([]domain.Item, 0, len(req.Items))
		for _, it := range req.Items {
			source = append(source, it.toItem())
		}
	}
	store.FilterByCategory(source, req.Category)
	c.JSON(http.StatusOK, gin.H{"items": toItemResponses(store.Items())})
}

// stream sends the list as an "items" server-sent event after every change until the client
// leaves or the session's catalog closes.
func (h *itemHandlers) stream(c *gin.Context) {
	updates, cancel := catalogFrom(c).Subscribe()
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case items, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("items", toItemResponses(items))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	h.logger.Debug("http: item stream closed")
}
