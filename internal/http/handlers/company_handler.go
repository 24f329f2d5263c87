package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// CompanyRequest is the payload for creating or replacing a company. Blank
// optional fields are stored as null.
type CompanyRequest struct {
	Name          string  `json:"name" example:"Acme"`
	Industry      *string `json:"industry,omitempty" example:"Software"`
	LocationCity  *string `json:"location_city,omitempty" example:"Austin"`
	LocationState *string `json:"location_state,omitempty" example:"TX"`
	CompanyURL    *string `json:"company_url,omitempty" example:"https://acme.example"`
}

func (r CompanyRequest) company(id string) *domain.Company {
	return &domain.Company{
		ID:            id,
		Name:          r.Name,
		Industry:      r.Industry,
		LocationCity:  r.LocationCity,
		LocationState: r.LocationState,
		CompanyURL:    r.CompanyURL,
	}
}

// ListCompaniesResponse wraps a page of companies.
type ListCompaniesResponse struct {
	Companies []domain.Company `json:"companies"`
	Page      Page             `json:"page"`
}

// CreateCompany godoc
// @ID          createCompany
// @Summary     Add a company
// @Tags        Companies
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Makes retries safe"
// @Param       body  body  handlers.CompanyRequest  true  "New company"
// @Success     201  {object}  handlers.CreatedResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse  "Name already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companies [post]
func (h *Handlers) CreateCompany(c *gin.Context) {
	var req CompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	h.createIdempotent(c, func(ctx context.Context) (string, error) {
		return h.companies.Save(ctx, req.company(""))
	})
}

// ListCompanies godoc
// @ID          listCompanies
// @Summary     List companies (newest first)
// @Tags        Companies
// @Produce     json
// @Param       limit   query  int  false  "Page size"  minimum(1)  default(20)
// @Param       offset  query  int  false  "Rows to skip"  minimum(0)  default(0)
// @Success     200  {object}  handlers.ListCompaniesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad paging parameters"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companies [get]
func (h *Handlers) ListCompanies(c *gin.Context) {
	p, good := h.page(c)
	if !good {
		return
	}
	items, err := h.companies.List(c.Request.Context(), p.Limit, p.Offset)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListCompaniesResponse{Companies: items, Page: p})
}

// GetCompany godoc
// @ID          getCompany
// @Summary     Get a company
// @Tags        Companies
// @Produce     json
// @Param       id  path  string  true  "Company ID"
// @Success     200  {object}  domain.Company
// @Failure     404  {object}  handlers.ErrorResponse  "Company not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companies/{id} [get]
func (h *Handlers) GetCompany(c *gin.Context) {
	co, err := h.companies.Get(c.Request.Context(), c.Param("id"))
	found(c, co, err, "company")
}

// UpdateCompany godoc
// @ID          updateCompany
// @Summary     Replace a company's fields
// @Tags        Companies
// @Accept      json
// @Param       id    path  string  true  "Company ID"
// @Param       body  body  handlers.CompanyRequest  true  "Replacement fields"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse  "Company not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Name already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companies/{id} [put]
func (h *Handlers) UpdateCompany(c *gin.Context) {
	var req CompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.companies.Save(c.Request.Context(), req.company(c.Param("id"))); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// DeleteCompany godoc
// @ID          deleteCompany
// @Summary     Delete a company
// @Description Fails with 409 while jobs still reference the company.
// @Tags        Companies
// @Param       id  path  string  true  "Company ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Company not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Company has jobs"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companies/{id} [delete]
func (h *Handlers) DeleteCompany(c *gin.Context) {
	if err := h.companies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// CompanyNameExists godoc
// @ID          companyNameExists
// @Summary     Check whether a company name is taken (case-insensitive)
// @Tags        Companies
// @Produce     json
// @Param       name  path  string  true  "Company name"
// @Success     200  {object}  handlers.ExistsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Blank name"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companies/name/{name}/exists [get]
func (h *Handlers) CompanyNameExists(c *gin.Context) {
	yes, err := h.companies.NameExists(c.Request.Context(), c.Param("name"))
	exists(c, yes, err)
}
