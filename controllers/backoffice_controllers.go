package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

// RecordController serves list/get/create/update/delete over a RecordSet.
type RecordController[T services.Record] struct {
	Records *services.RecordSet[T]
	Label   string
	// prepare stamps the id (from the path, or a fresh one on create) and any
	// defaults before the record is written.
	prepare func(rec T, id string) T
}

func NewVendorController(svc *services.Services) *RecordController[models.Vendor] {
	return &RecordController[models.Vendor]{
		Records: svc.Vendors,
		Label:   "Vendor",
		prepare: func(v models.Vendor, id string) models.Vendor {
			v.ID = orNewID(id, "ven")
			return v
		},
	}
}

func NewEmployeeController(svc *services.Services) *RecordController[models.Employee] {
	return &RecordController[models.Employee]{
		Records: svc.Employees,
		Label:   "Employee",
		prepare: func(e models.Employee, id string) models.Employee {
			e.ID = orNewID(id, "emp")
			return e
		},
	}
}

func NewPurchaseOrderController(svc *services.Services) *RecordController[models.PurchaseOrder] {
	return &RecordController[models.PurchaseOrder]{
		Records: svc.PurchaseOrders,
		Label:   "Purchase order",
		prepare: func(p models.PurchaseOrder, id string) models.PurchaseOrder {
			p.ID = orNewID(id, "po")
			if p.Status == "" {
				p.Status = models.PurchaseOrderPending
			}
			if p.CreatedAt.IsZero() {
				p.CreatedAt = time.Now().UTC()
			}
			if p.TotalCost == 0 {
				for _, line := range p.Items {
					p.TotalCost += line.Cost * line.Quantity
				}
				p.TotalCost = utils.RoundCents(p.TotalCost)
			}
			return p
		},
	}
}

func orNewID(id, prefix string) string {
	if id != "" {
		return id
	}
	return prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func (rc *RecordController[T]) List(c *gin.Context) {
	records, err := rc.Records.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of "+strings.ToLower(rc.Label)+"s", records)
}

func (rc *RecordController[T]) Get(c *gin.Context) {
	rec, err := rc.Records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, rc.Label+" detail", rec)
}

func (rc *RecordController[T]) Create(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := rc.Records.Upsert(c.Request.Context(), rc.prepare(rec, ""))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, rc.Label+" created", saved)
}

func (rc *RecordController[T]) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := rc.Records.Get(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := rc.Records.Upsert(c.Request.Context(), rc.prepare(rec, id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, rc.Label+" updated", saved)
}

func (rc *RecordController[T]) Delete(c *gin.Context) {
	if err := rc.Records.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, rc.Label+" deleted", nil)
}
