package gql

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler executes GraphQL requests sent as a JSON POST body or as GET
// query parameters. Execution errors are reported in the response body with
// status 200; malformed requests get 400.
func Handler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		switch c.Request.Method {
		case http.MethodGet:
			req.Query = c.Query("query")
			req.OperationName = c.Query("operationName")
			if v := c.Query("variables"); v != "" {
				if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid variables", "details": err.Error()})
					return
				}
			}
		default:
			if err := c.ShouldBindJSON(&req); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
				return
			}
		}
		if req.Query == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing query"})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Request.Context(),
		})
		c.JSON(http.StatusOK, result)
	}
}

// Register mounts the GraphQL endpoint on /graphql.
func Register(r gin.IRoutes, schema graphql.Schema) {
	h := Handler(schema)
	r.GET("/graphql", h)
	r.POST("/graphql", h)
}
