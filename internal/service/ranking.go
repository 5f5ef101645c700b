package service

import (
	"sort"
	"time"

	"github.com/vowlink/wedding_go_server/internal/model"
)

// RankListings 按订阅档位对过滤后的商家列表排序：elite > featured > essential > 无订阅。
// 档位在读取时做到期校验，过期订阅按无订阅参与排序。
// 稳定排序：同档位商家保持入参顺序，避免相同条件下多次搜索结果抖动。
// 纯函数，不修改入参切片。
func RankListings(listings []*model.Listing, now time.Time) []*model.Listing {
	ranked := make([]*model.Listing, len(listings))
	copy(ranked, listings)

	sort.SliceStable(ranked, func(i, j int) bool {
		return model.PlanPriority(ranked[i].EffectivePlan(now)) > model.PlanPriority(ranked[j].EffectivePlan(now))
	})

	return ranked
}
