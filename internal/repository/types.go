package repository

// ProductListFilter 商品列表查询条件
type ProductListFilter struct {
	CategorySlug   string // 分类 slug 过滤
	Search         string // 名称/描述模糊搜索
	OnlyDiscounted bool   // 仅折扣商品
	WithVariants   bool   // 是否预加载变体与尺码
	Page           int
	PageSize       int
}

// OrderListFilter 订单列表查询条件
type OrderListFilter struct {
	Status string // 订单状态过滤
	Search string // 收件人姓名/邮箱/电话模糊搜索
	Page   int
	PageSize int
}

// ContactMessageListFilter 留言列表查询条件
type ContactMessageListFilter struct {
	Search   string // 姓名/邮箱/主题模糊搜索
	Page     int
	PageSize int
}
