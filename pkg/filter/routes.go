package filter

import (
	"context"
	"net/http"

	"github.com/Suhaibinator/SFilter/pkg/reply"
	"github.com/Suhaibinator/SFilter/pkg/store"
	"github.com/julienschmidt/httprouter"
)

// Route binds a filter to a method and an httprouter path pattern such as
// "/users/:id" or "/static/*filepath".
type Route struct {
	Method string
	Path   string
	Filter Filter
}

// RouteTable is a filter that dispatches to the filter of the matching route.
// Path parameters are stored in the request's LazyReqStore and can be read
// with Param.
type RouteTable struct {
	router  *httprouter.Router
	methods map[string]struct{}
}

// paramsKey is the LazyReqStore key for matched path parameters.
type paramsKey struct{}

// matchKey carries the lookup result out of the httprouter handle.
type matchKey struct{}

type match struct {
	filter Filter
}

// Routes builds a route table. Like httprouter, it panics if two routes
// conflict.
func Routes(routes ...Route) *RouteTable {
	t := &RouteTable{
		router:  httprouter.New(),
		methods: make(map[string]struct{}),
	}
	for _, route := range routes {
		f := route.Filter
		t.router.Handle(route.Method, route.Path, func(_ http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			if m, ok := r.Context().Value(matchKey{}).(*match); ok {
				m.filter = f
			}
		})
		t.methods[route.Method] = struct{}{}
	}
	return t
}

// Filter implements Filter. Unknown paths are rejected with 404; known paths
// with an unregistered method are rejected with 405.
func (t *RouteTable) Filter(r *http.Request) (reply.Reply, error) {
	f, ps, ok := t.lookup(r, r.Method)
	if !ok {
		for method := range t.methods {
			if method == r.Method {
				continue
			}
			if _, _, found := t.lookup(r, method); found {
				return nil, MethodNotAllowed()
			}
		}
		return nil, NotFound()
	}

	if s, ok := store.FromRequest(r); ok {
		s.Set(paramsKey{}, ps)
	}
	return f.Filter(r)
}

func (t *RouteTable) lookup(r *http.Request, method string) (Filter, httprouter.Params, bool) {
	handle, ps, _ := t.router.Lookup(method, r.URL.Path)
	if handle == nil {
		return nil, nil, false
	}
	m := &match{}
	handle(nil, r.WithContext(context.WithValue(r.Context(), matchKey{}, m)), ps)
	return m.filter, ps, m.filter != nil
}

// Params returns the path parameters matched for r by a RouteTable.
func Params(r *http.Request) httprouter.Params {
	s, _ := store.FromRequest(r)
	ps, _ := store.Value[httprouter.Params](s, paramsKey{})
	return ps
}

// Param returns a single path parameter, or "" when it is not set.
func Param(r *http.Request, name string) string {
	return Params(r).ByName(name)
}
