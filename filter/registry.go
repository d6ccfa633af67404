package filter

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Tsukikage7/rpc-kit/rpc"
)

// registration 一条注册记录.
type registration struct {
	name         string
	filter       Filter
	priority     int
	groups       []string
	activateKeys []string
	defaultOff   bool
	order        int
}

// matchGroup 判断分组是否匹配，未声明分组表示全部匹配.
func (r *registration) matchGroup(group string) bool {
	if len(r.groups) == 0 {
		return true
	}
	for _, g := range r.groups {
		if g == group {
			return true
		}
	}
	return false
}

// defaultActive 判断是否对该 URL 默认激活.
func (r *registration) defaultActive(url *rpc.URL, group string) bool {
	if r.defaultOff || !r.matchGroup(group) {
		return false
	}
	if len(r.activateKeys) == 0 {
		return true
	}
	for _, key := range r.activateKeys {
		if url.HasParam(key) {
			return true
		}
	}
	return false
}

// RegisterOption 注册选项.
type RegisterOption func(*registration)

// WithPriority 设置优先级，数值小的先执行（在链的最外层）.
func WithPriority(priority int) RegisterOption {
	return func(r *registration) { r.priority = priority }
}

// WithGroup 限定过滤器所属分组（provider/consumer）.
func WithGroup(groups ...string) RegisterOption {
	return func(r *registration) { r.groups = groups }
}

// WithActivateKeys 限定默认激活条件：URL 携带任一参数时才激活.
func WithActivateKeys(keys ...string) RegisterOption {
	return func(r *registration) { r.activateKeys = keys }
}

// WithDefaultOff 关闭默认激活，必须被 URL 点名才参与.
func WithDefaultOff() RegisterOption {
	return func(r *registration) { r.defaultOff = true }
}

// Registry 显式过滤器注册表.
//
// 注册表是链构建器消费的发现协作方：给定 (URL, 选择键, 分组)，
// 返回按优先级升序排好的过滤器序列.
type Registry struct {
	mu     sync.RWMutex
	regs   []*registration
	byName map[string]*registration
}

// NewRegistry 创建注册表.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*registration)}
}

// Register 注册过滤器.
func (r *Registry) Register(name string, f Filter, opts ...RegisterOption) error {
	if f == nil {
		return fmt.Errorf("%w: %s", ErrNilFilter, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	reg := &registration{
		name:   name,
		filter: f,
		order:  len(r.regs),
	}
	for _, opt := range opts {
		opt(reg)
	}

	r.regs = append(r.regs, reg)
	r.byName[name] = reg
	return nil
}

// MustRegister 注册过滤器，失败时 panic.
func (r *Registry) MustRegister(name string, f Filter, opts ...RegisterOption) {
	if err := r.Register(name, f, opts...); err != nil {
		panic(err)
	}
}

// Select 选择对 (url, key, group) 激活的过滤器.
//
// 结果包含分组与激活条件匹配的默认激活过滤器，
// 加上 url.Param(key) 中逗号分隔点名的过滤器；
// "-name" 表示排除。点名未注册的过滤器返回错误.
// 排序按优先级升序，优先级相同保持注册顺序.
func (r *Registry) Select(url *rpc.URL, key, group string) ([]Filter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	named, excluded, err := r.parseNamed(url.ParamOr(key, ""))
	if err != nil {
		return nil, err
	}

	picked := make([]*registration, 0, len(r.regs))
	seen := make(map[string]bool, len(r.regs))

	for _, reg := range r.regs {
		if excluded[reg.name] {
			continue
		}
		if reg.defaultActive(url, group) {
			picked = append(picked, reg)
			seen[reg.name] = true
		}
	}
	for _, reg := range named {
		if excluded[reg.name] || seen[reg.name] {
			continue
		}
		picked = append(picked, reg)
		seen[reg.name] = true
	}

	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].priority != picked[j].priority {
			return picked[i].priority < picked[j].priority
		}
		return picked[i].order < picked[j].order
	})

	filters := make([]Filter, len(picked))
	for i, reg := range picked {
		filters[i] = reg.filter
	}
	return filters, nil
}

// parseNamed 解析选择键参数中的点名与排除项.
func (r *Registry) parseNamed(value string) ([]*registration, map[string]bool, error) {
	var named []*registration
	excluded := make(map[string]bool)

	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "-") {
			excluded[strings.TrimPrefix(name, "-")] = true
			continue
		}
		reg, ok := r.byName[name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
		}
		named = append(named, reg)
	}
	return named, excluded, nil
}
