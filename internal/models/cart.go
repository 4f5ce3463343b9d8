package models

import "fmt"

// CartEntry 购物车条目
type CartEntry struct {
	ProductID uint   `json:"product_id"` // 商品ID
	Quantity  int    `json:"quantity"`   // 数量
	Color     string `json:"color"`      // 颜色
	Size      string `json:"size"`       // 尺码
}

// Cart 购物车内容，key 形如 "{product_id}_{color}_{size}"
type Cart map[string]CartEntry

// CartItemKey 生成购物车条目 key
func CartItemKey(productID uint, color, size string) string {
	return fmt.Sprintf("%d_%s_%s", productID, color, size)
}
