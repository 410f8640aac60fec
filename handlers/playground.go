package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterPlayground registers the GraphQL developer endpoints.
// - GET /playground      -> GraphiQL page pointed at /graphql
// - GET /graphql/schema  -> schema definition language text
func RegisterPlayground(rg gin.IRoutes, sdl string) {
	rg.GET("/playground", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, playgroundHTML)
	})

	rg.GET("/graphql/schema", func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.String(http.StatusOK, sdl)
	})
}

const playgroundHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Bridges API | GraphiQL</title>
    <link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
    <style>body { margin: 0; height: 100vh; } #graphiql { height: 100vh; }</style>
  </head>
  <body>
    <div id="graphiql"></div>
    <script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
    <script>
      const fetcher = GraphiQL.createFetcher({ url: '/graphql' });
      ReactDOM.createRoot(document.getElementById('graphiql')).render(
        React.createElement(GraphiQL, {
          fetcher,
          defaultQuery: '{ bridges { listBridges(limit: 10) { data { id title createdOn } meta { limit before after } } } }',
        }),
      );
    </script>
  </body>
</html>`
