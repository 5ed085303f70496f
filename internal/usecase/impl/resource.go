package impl

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/domain/service"
	"storefront/internal/usecase/slice"
)

// resource binds one REST collection of the remote API to its in-memory slice.
// Every call flips the loading flag for its duration and records the last error;
// on failure the cached collection is left as it was.
type resource[T slice.Entity] struct {
	api       service.APIClient
	state     *slice.Slice[T]
	logger    *slog.Logger
	path      string
	plural    string
	singular  string
	normalize func(*T)
}

func (r *resource[T]) do(ctx context.Context, req *service.Request, apply func(body []byte) error) error {
	r.state.Start()

	body, err := r.api.Do(ctx, req)
	if err == nil && apply != nil {
		err = apply(body)
	}

	r.state.Finish(err)
	if err != nil {
		r.logger.Warn("Request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Any("error", err))
	}

	return err
}

func (r *resource[T]) decodeOne(body []byte) (*T, error) {
	item, err := decodeEntity[T](body, r.singular)
	if err != nil {
		return nil, err
	}
	if r.normalize != nil {
		r.normalize(item)
	}

	return item, nil
}

// list replaces the whole collection with the response.
func (r *resource[T]) list(ctx context.Context, token string, query map[string]string) ([]T, error) {
	var items []T
	err := r.do(ctx, &service.Request{Method: http.MethodGet, Path: r.path, Query: query, Token: token}, func(body []byte) error {
		decoded, err := decodeCollection[T](body, r.plural)
		if err != nil {
			return err
		}
		if r.normalize != nil {
			for i := range decoded {
				r.normalize(&decoded[i])
			}
		}
		items = decoded
		r.state.Replace(items)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// get upserts the entity and marks it selected.
func (r *resource[T]) get(ctx context.Context, token, id string) (*T, error) {
	var item *T
	err := r.do(ctx, &service.Request{Method: http.MethodGet, Path: r.path + "/" + id, Token: token}, func(body []byte) error {
		decoded, err := r.decodeOne(body)
		if err != nil {
			return err
		}
		item = decoded
		r.state.Upsert(*item)

		return nil
	})

	return item, err
}

// create posts payload and appends the created entity.
func (r *resource[T]) create(ctx context.Context, token string, payload any) (*T, error) {
	var item *T
	err := r.do(ctx, &service.Request{Method: http.MethodPost, Path: r.path, Token: token, Body: payload}, func(body []byte) error {
		decoded, err := r.decodeOne(body)
		if err != nil {
			return err
		}
		item = decoded
		r.state.Append(*item)

		return nil
	})

	return item, err
}

// update puts payload. When the response echoes the entity it replaces the cached one
// and is returned; otherwise the result is nil and the caller patches the cache itself.
func (r *resource[T]) update(ctx context.Context, token, id string, payload any) (*T, error) {
	var item *T
	err := r.do(ctx, &service.Request{Method: http.MethodPut, Path: r.path + "/" + id, Token: token, Body: payload}, func(body []byte) error {
		if !hasEntity(body) {
			return nil
		}
		decoded, err := r.decodeOne(body)
		if err != nil {
			return err
		}
		if (*decoded).EntityID() == "" {
			return nil
		}
		item = decoded
		r.state.Put(*item)

		return nil
	})

	return item, err
}

// remove deletes the entity remotely, then from the cache.
func (r *resource[T]) remove(ctx context.Context, token, id string) error {
	return r.do(ctx, &service.Request{Method: http.MethodDelete, Path: r.path + "/" + id, Token: token}, func([]byte) error {
		r.state.Remove(id)

		return nil
	})
}
