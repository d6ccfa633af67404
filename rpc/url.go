// Package rpc 提供调用管道的核心抽象：URL、Invocation、Invoker、Result 与协议契约.
package rpc

import (
	"fmt"
	"net"
	neturl "net/url"
	"sort"
	"strconv"
	"strings"
)

// RegistryProtocol 注册中心协议名.
const RegistryProtocol = "registry"

// RegistryKey URL 参数，非空时表示该 URL 指向注册中心.
const RegistryKey = "registry"

// URL 服务端点描述符.
//
// URL 是不可变的：参数在构造时拷贝，之后只读.
type URL struct {
	Protocol  string
	Host      string
	Port      int
	Interface string

	params map[string]string
}

// NewURL 创建 URL.
func NewURL(protocol, host string, port int, iface string, params map[string]string) *URL {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return &URL{
		Protocol:  protocol,
		Host:      host,
		Port:      port,
		Interface: iface,
		params:    copied,
	}
}

// ParseURL 解析形如 proto://host:port/Interface?k=v 的地址.
func ParseURL(raw string) (*URL, error) {
	u, err := neturl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: 缺少协议: %s", ErrInvalidURL, raw)
	}

	host := u.Host
	port := 0
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		host = h
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: 端口无效: %s", ErrInvalidURL, raw)
		}
	}

	params := make(map[string]string)
	for k, vs := range u.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}

	return &URL{
		Protocol:  u.Scheme,
		Host:      host,
		Port:      port,
		Interface: strings.TrimPrefix(u.Path, "/"),
		params:    params,
	}, nil
}

// Param 返回参数值.
func (u *URL) Param(key string) (string, bool) {
	v, ok := u.params[key]
	return v, ok
}

// ParamOr 返回参数值，不存在时返回默认值.
func (u *URL) ParamOr(key, def string) string {
	if v, ok := u.params[key]; ok {
		return v
	}
	return def
}

// HasParam 判断参数是否存在且非空.
func (u *URL) HasParam(key string) bool {
	return u.params[key] != ""
}

// IsRegistry 判断该 URL 是否指向注册中心.
//
// 注册中心端点不会被过滤器链包装.
func (u *URL) IsRegistry() bool {
	return u.Protocol == RegistryProtocol || u.HasParam(RegistryKey)
}

// Address 返回 host:port.
func (u *URL) Address() string {
	if u.Port <= 0 {
		return u.Host
	}
	return net.JoinHostPort(u.Host, strconv.Itoa(u.Port))
}

// ServiceKey 返回服务标识，用于本地导出表等场景.
func (u *URL) ServiceKey() string {
	return u.Interface
}

// String 返回规范化的地址字符串，参数按 key 排序以保证稳定.
func (u *URL) String() string {
	var b strings.Builder
	b.WriteString(u.Protocol)
	b.WriteString("://")
	b.WriteString(u.Address())
	b.WriteString("/")
	b.WriteString(u.Interface)

	if len(u.params) > 0 {
		keys := make([]string, 0, len(u.params))
		for k := range u.params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i == 0 {
				b.WriteString("?")
			} else {
				b.WriteString("&")
			}
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(neturl.QueryEscape(u.params[k]))
		}
	}
	return b.String()
}
