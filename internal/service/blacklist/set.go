package blacklist

import (
	"slices"
	"strings"
	"sync"

	"github.com/SAFFEMIRZA/dex-bot/pkg/address"
	"github.com/samber/lo"
)

// Set 黑名单, 代币符号和开发者地址两个集合
// 只能追加, 读写并发安全
type Set struct {
	mu        sync.RWMutex
	symbols   map[string]struct{}
	addresses map[string]struct{}
}

func NewSet(symbols, addresses []string) *Set {
	s := &Set{
		symbols:   make(map[string]struct{}),
		addresses: make(map[string]struct{}),
	}
	for _, sym := range lo.Uniq(lo.Map(symbols, func(item string, _ int) string {
		return normalizeSymbol(item)
	})) {
		if sym != "" {
			s.symbols[sym] = struct{}{}
		}
	}
	for _, addr := range lo.Uniq(lo.Map(addresses, func(item string, _ int) string {
		return address.Normalize(item)
	})) {
		if addr != "" {
			s.addresses[addr] = struct{}{}
		}
	}
	return s
}

// Contains 符号或地址任一命中即视为黑名单
func (s *Set) Contains(symbol, addr string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.symbols[normalizeSymbol(symbol)]; ok {
		return true
	}
	_, ok := s.addresses[address.Normalize(addr)]
	return ok
}

// Add 追加符号和地址, 已存在的忽略. 任一集合有新增时返回 true
func (s *Set) Add(symbol, addr string) bool {
	symbol = normalizeSymbol(symbol)
	addr = address.Normalize(addr)

	s.mu.Lock()
	defer s.mu.Unlock()
	added := false
	if symbol != "" {
		if _, ok := s.symbols[symbol]; !ok {
			s.symbols[symbol] = struct{}{}
			added = true
		}
	}
	if addr != "" {
		if _, ok := s.addresses[addr]; !ok {
			s.addresses[addr] = struct{}{}
			added = true
		}
	}
	return added
}

// normalizeSymbol 符号区分大小写, 只去掉首尾空白
func normalizeSymbol(symbol string) string {
	return strings.TrimSpace(symbol)
}

// Symbols returns a sorted copy of the blacklisted symbols.
func (s *Set) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := lo.Keys(s.symbols)
	slices.Sort(res)
	return res
}

// Addresses returns a sorted copy of the blacklisted addresses.
func (s *Set) Addresses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := lo.Keys(s.addresses)
	slices.Sort(res)
	return res
}
