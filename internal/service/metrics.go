package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	likeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapora",
		Name:      "like_toggles_total",
		Help:      "点赞切换次数，按结果区分",
	}, []string{"action"})

	viewsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapora",
		Name:      "views_recorded_total",
		Help:      "新写入的观看记录数",
	}, []string{"viewer"})

	blobCleanups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapora",
		Name:      "blob_cleanups_total",
		Help:      "待删除的媒体文件数，mode 区分走队列还是同步删除",
	}, []string{"reason", "mode"})
)
