// Package gql exposes the Bridges operations over GraphQL.
package gql

import (
	_ "embed"

	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/pager"
	"github.com/gogotex/bridges/internal/bridge/service"
	"github.com/graphql-go/graphql"
)

// SDL is the schema in GraphQL schema definition language, served for
// tooling. It mirrors the types built in NewSchema.
//
//go:embed schema.graphql
var SDL string

// namespace is the non-nil source of the bridges query and mutation objects.
type namespace struct{}

var createdByType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreatedBy",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"type":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"displayName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var bridgeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Bridge",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return optional(p.Source.(*bridge.Bridge).Description), nil
			},
		},
		"createdOn": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"savedOn":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"createdBy": &graphql.Field{
			Type: createdByType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if by := p.Source.(*bridge.Bridge).CreatedBy; by != nil {
					return by, nil
				}
				return nil, nil
			},
		},
	},
})

var createInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "BridgeCreateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var updateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "BridgeUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var sortEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "BridgesListSort",
	Values: graphql.EnumValueConfigMap{
		string(pager.SortCreatedOnAsc):  &graphql.EnumValueConfig{Value: pager.SortCreatedOnAsc},
		string(pager.SortCreatedOnDesc): &graphql.EnumValueConfig{Value: pager.SortCreatedOnDesc},
	},
})

var metaType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BridgesListMeta",
	Fields: graphql.Fields{
		"limit": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"before": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return optional(p.Source.(pager.Meta).Before), nil
			},
		},
		"after": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return optional(p.Source.(pager.Meta).After), nil
			},
		},
	},
})

var listType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BridgesList",
	Fields: graphql.Fields{
		"data": &graphql.Field{Type: graphql.NewList(bridgeType)},
		"meta": &graphql.Field{Type: graphql.NewNonNull(metaType)},
	},
})

func optional(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// NewSchema builds the executable schema with resolvers bound to env.
func NewSchema(env *service.Env) (graphql.Schema, error) {
	r := &resolver{env: env}

	bridgesQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "BridgesQuery",
		Fields: graphql.Fields{
			"getBridge": &graphql.Field{
				Type: bridgeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: instrument("getBridge", r.getBridge),
			},
			"listBridges": &graphql.Field{
				Type: graphql.NewNonNull(listType),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"before": &graphql.ArgumentConfig{Type: graphql.String},
					"after":  &graphql.ArgumentConfig{Type: graphql.String},
					"sort":   &graphql.ArgumentConfig{Type: sortEnum},
				},
				Resolve: instrument("listBridges", r.listBridges),
			},
		},
	})

	bridgesMutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "BridgesMutation",
		Fields: graphql.Fields{
			"createBridge": &graphql.Field{
				Type: graphql.NewNonNull(bridgeType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createInputType)},
				},
				Resolve: instrument("createBridge", r.createBridge),
			},
			"updateBridge": &graphql.Field{
				Type: graphql.NewNonNull(bridgeType),
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateInputType)},
				},
				Resolve: instrument("updateBridge", r.updateBridge),
			},
			"deleteBridge": &graphql.Field{
				Type: graphql.NewNonNull(bridgeType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: instrument("deleteBridge", r.deleteBridge),
			},
		},
	})

	root := func(p graphql.ResolveParams) (interface{}, error) { return namespace{}, nil }
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: graphql.Fields{"bridges": &graphql.Field{Type: graphql.NewNonNull(bridgesQuery), Resolve: root}},
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: graphql.Fields{"bridges": &graphql.Field{Type: graphql.NewNonNull(bridgesMutation), Resolve: root}},
		}),
	})
}
