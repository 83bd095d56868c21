package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// DefaultPrefix is where the API groups are mounted
const DefaultPrefix = "/api"

// RouteRegistrar defines the interface for registering routes. auth is
// prepended to every route that is not public.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, auth ...gin.HandlerFunc)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	prefix     string
	auth       []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithPrefix mounts the API under prefix instead of /api
func WithPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.prefix = prefix
	}
}

// WithAuth sets the authentication chain for protected routes
func WithAuth(auth ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.auth = compact(auth)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine: engine,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Prefix returns the API mount point
func (r *Router) Prefix() string {
	return r.prefix
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.prefix)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api, r.auth...)
	}
}

// RouteInfo describes one registered route
type RouteInfo struct {
	Method string
	Path   string
	Public bool
}

// DomainGroup creates a route group for a specific domain
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
	public   bool
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group. It runs after authentication.
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, compact(middleware)...)
	return dg
}

func compact(handlers []gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

func (dg *DomainGroup) handle(method, path string, public bool, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:   method,
		path:     path,
		handlers: handlers,
		public:   public,
	})
	return dg
}

// GET registers an authenticated GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, false, handlers)
}

// POST registers an authenticated POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, false, handlers)
}

// PUT registers an authenticated PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, false, handlers)
}

// PATCH registers an authenticated PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, path, false, handlers)
}

// DELETE registers an authenticated DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, false, handlers)
}

// Public registers a route that is reachable without a token
func (dg *DomainGroup) Public(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(method, path, true, handlers)
}

// Group creates a sub-group within this domain. The sub-group inherits the
// parent's middleware.
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup, auth ...gin.HandlerFunc) {
	dg.register(rg, compact(auth), nil)
}

func (dg *DomainGroup) register(rg *gin.RouterGroup, auth, inherited []gin.HandlerFunc) {
	group := rg.Group(dg.prefix)
	middleware := append(append([]gin.HandlerFunc{}, inherited...), dg.middleware...)

	for _, route := range dg.routes {
		chain := make([]gin.HandlerFunc, 0, len(auth)+len(middleware)+len(route.handlers))
		if !route.public {
			chain = append(chain, auth...)
		}
		chain = append(chain, middleware...)
		chain = append(chain, route.handlers...)
		group.Handle(route.method, route.path, chain...)
	}

	for _, subgroup := range dg.subgroups {
		subgroup.register(group, auth, middleware)
	}
}

// Routes lists the group's routes with paths relative to the API prefix
func (dg *DomainGroup) Routes() []RouteInfo {
	return dg.collect("/")
}

func (dg *DomainGroup) collect(base string) []RouteInfo {
	prefix := path.Join(base, dg.prefix)
	infos := make([]RouteInfo, 0, len(dg.routes))
	for _, route := range dg.routes {
		full := prefix
		if route.path != "" && route.path != "/" {
			full = path.Join(prefix, route.path)
		}
		infos = append(infos, RouteInfo{Method: route.method, Path: full, Public: route.public})
	}
	for _, subgroup := range dg.subgroups {
		infos = append(infos, subgroup.collect(prefix)...)
	}
	return infos
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
