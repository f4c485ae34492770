package graphql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

// Request is the JSON body of a GraphQL POST
type Request struct {
	Query         string                 `json:"query" binding:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler serves GraphQL requests over HTTP
type Handler struct {
	schema graphql.Schema
}

// NewHandler creates a handler for schema
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// Execute runs a request against the schema with the caller's context
func (h *Handler) Execute(c *gin.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request.Context(),
	})
}

// Serve handles POST /graphql
// @Summary Execute a GraphQL operation
// @Tags graphql
// @Accept json
// @Produce json
// @Param request body Request true "GraphQL request"
// @Success 200 {object} graphql.Result
// @Failure 400 {object} graphql.Result
// @Router /graphql [post]
func (h *Handler) Serve(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &graphql.Result{
			Errors: []gqlerrors.FormattedError{gqlerrors.NewFormattedError("request body must be a JSON object with a query")},
		})
		return
	}

	c.JSON(http.StatusOK, h.Execute(c, req))
}
