package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type CreateBlockRequest struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	FromDate string `json:"from_date" binding:"required"`
	ToDate   string `json:"to_date" binding:"required"`
	Reason   string `json:"reason"`
}

type DeleteBlockRequest struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	FromDate string `json:"from_date"` // empty means "from today"
}

type BlockController struct {
	BlockSvc *services.BlockService
}

func NewBlockController(svc *services.BlockService) *BlockController {
	return &BlockController{BlockSvc: svc}
}

// ---------------------------
// 1) Block a room (POST /api/blocks)
// ---------------------------

func (ctrl *BlockController) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "room_id, from_date and to_date are required",
			"details": err.Error(),
		}})
		return
	}

	from, err := utils.ParseDate(req.FromDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "from_date must be a YYYY-MM-DD date")
		return
	}
	to, err := utils.ParseDate(req.ToDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "to_date must be a YYYY-MM-DD date")
		return
	}

	created, err := ctrl.BlockSvc.BlockRoom(req.RoomID, from, to, req.Reason)
	if err != nil {
		log.Printf("CreateBlock error for room %d: %v", req.RoomID, err)
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDateRange", "to_date must be after from_date")
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "room not found")
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
				"code":    "error.internal",
				"message": "failed to block room",
				"details": err.Error(),
			}})
		}
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"blockedNights": created})
}

// ---------------------------
// 2) Unblock (DELETE /api/blocks)
// ---------------------------

func (ctrl *BlockController) DeleteBlock(c *gin.Context) {
	var req DeleteBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "room_id is required",
			"details": err.Error(),
		}})
		return
	}

	var from time.Time
	if req.FromDate != "" {
		parsed, err := utils.ParseDate(req.FromDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "from_date must be a YYYY-MM-DD date")
			return
		}
		from = parsed
	}

	removed, err := ctrl.BlockSvc.UnblockRoom(req.RoomID, from)
	if err != nil {
		log.Printf("DeleteBlock error for room %d: %v", req.RoomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "error.internal",
			"message": "failed to unblock room",
			"details": err.Error(),
		}})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"removedNights": removed})
}

// ---------------------------
// 3) List blocks for a room (GET /api/blocks?room_id=)
// ---------------------------

func (ctrl *BlockController) ListBlocks(c *gin.Context) {
	roomID, ok := roomIDQuery(c)
	if !ok {
		return
	}

	blocks, err := ctrl.BlockSvc.ListBlocks(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "error.internal",
			"message": "failed to list blocks",
			"details": err.Error(),
		}})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, blocks)
}
