package gql

import (
	"errors"
	"time"

	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/pager"
	"github.com/gogotex/bridges/internal/bridge/service"
	"github.com/gogotex/bridges/pkg/logger"
	"github.com/gogotex/bridges/pkg/metrics"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

type resolver struct {
	env *service.Env
}

func (r *resolver) getBridge(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	return service.Get(p.Context, r.env, id)
}

func (r *resolver) listBridges(p graphql.ResolveParams) (interface{}, error) {
	params := bridge.ListParams{}
	if v, ok := p.Args["limit"].(int); ok {
		params.Limit = &v
	}
	if v, ok := p.Args["sort"].(pager.Sort); ok {
		params.Sort = v
	}
	params.After, _ = p.Args["after"].(string)
	params.Before, _ = p.Args["before"].(string)

	list, err := service.List(p.Context, r.env, params)
	if err != nil {
		return nil, err
	}
	metrics.ListPageSize.Observe(float64(len(list.Data)))
	return list, nil
}

func (r *resolver) createBridge(p graphql.ResolveParams) (interface{}, error) {
	data, _ := p.Args["data"].(map[string]interface{})
	in := bridge.CreateInput{Description: stringArg(data, "description")}
	in.Title, _ = data["title"].(string)
	return service.Create(p.Context, r.env, in)
}

// updateBridge treats an explicit null like an absent field.
func (r *resolver) updateBridge(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	data, _ := p.Args["data"].(map[string]interface{})
	return service.Update(p.Context, r.env, id, bridge.UpdateInput{
		Title:       stringArg(data, "title"),
		Description: stringArg(data, "description"),
	})
}

func (r *resolver) deleteBridge(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	return service.Delete(p.Context, r.env, id)
}

func stringArg(m map[string]interface{}, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// codedError adds an extensions.code entry to the GraphQL error.
type codedError struct {
	error
	code string
}

func (e *codedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func (e *codedError) Unwrap() error { return e.error }

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, bridge.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, bridge.ErrInvalidInput):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

var errorCodes = map[string]string{
	metrics.OutcomeNotFound: "NOT_FOUND",
	metrics.OutcomeInvalid:  "BAD_USER_INPUT",
	metrics.OutcomeError:    "INTERNAL",
}

// instrument records latency and outcome of a resolver.
func instrument(op string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		res, err := fn(p)
		elapsed := time.Since(start)

		out := outcome(err)
		metrics.OperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
		metrics.Operations.WithLabelValues(op, out).Inc()
		entry := logger.WithFields(logrus.Fields{"operation": op, "outcome": out, "duration": elapsed.String()})
		if err != nil {
			if out == metrics.OutcomeError {
				entry.WithError(err).Error("resolver failed")
			} else {
				entry.WithError(err).Debug("resolver rejected")
			}
			return nil, &codedError{error: err, code: errorCodes[out]}
		}
		entry.Debug("resolved")
		return res, nil
	}
}
