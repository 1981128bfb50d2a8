// Package smoother 平滑相邻音节间的时间抖动
// 逐字歌词的时间轴常带有采集误差，相邻音节之间会出现细碎的空隙；
// 平滑器把符合阈值条件的相邻边界向中点收拢，行级起止时间保持不变
package smoother

import (
	"github.com/yleoer/lyric/pkg/model"
)

// Options 是平滑器配置
type Options struct {
	Factor              float64 // 每次迭代向中点收拢的比例，取值 [0.0, 0.5]
	Iterations          int     // 迭代次数
	DurationThresholdMs int64   // 时长差异阈值：相邻音节时长差超过该值时不平滑
	GapThresholdMs      int64   // 间隔阈值：空隙超过该值视为刻意停顿，不平滑
}

// DefaultOptions 返回一组保守的默认参数
func DefaultOptions() Options {
	return Options{
		Factor:              0.3,
		Iterations:          5,
		DurationThresholdMs: 50,
		GapThresholdMs:      100,
	}
}

// normalized 返回约束到合法范围内的配置副本
func (o Options) normalized() Options {
	if o.Factor < 0 {
		o.Factor = 0
	}
	if o.Factor > 0.5 {
		o.Factor = 0.5
	}
	if o.Iterations < 0 {
		o.Iterations = 0
	}
	return o
}

// Smooth 对所有行的所有轨道执行平滑，就地修改音节时间戳
// 每次迭代后排序与不重叠不变量均成立：边界只向中点移动，不会越过相邻音节
func Smooth(lines []*model.LyricLine, opts Options) {
	opts = opts.normalized()
	if opts.Factor == 0 || opts.Iterations == 0 {
		return
	}
	for _, line := range lines {
		for i := range line.Tracks {
			smoothTrack(&line.Tracks[i].Content, opts)
		}
	}
}

// smoothTrack 在单条轨道内（跨词）遍历相邻音节对执行平滑
func smoothTrack(track *model.LyricTrack, opts Options) {
	syls := track.Syllables()
	if len(syls) < 2 {
		return
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		for i := 0; i < len(syls)-1; i++ {
			a, b := syls[i], syls[i+1]
			if !a.Timed || !b.Timed {
				continue
			}
			gap := b.StartMs - a.EndMs
			// 负空隙说明上游数据已经重叠，这里不做二次加工
			if gap < 0 || gap > opts.GapThresholdMs {
				continue
			}
			diff := a.DurationMs() - b.DurationMs()
			if diff < 0 {
				diff = -diff
			}
			if diff > opts.DurationThresholdMs {
				continue
			}

			mid := (a.EndMs + b.StartMs) / 2
			a.EndMs += int64(opts.Factor * float64(mid-a.EndMs))
			b.StartMs -= int64(opts.Factor * float64(b.StartMs-mid))
		}
	}
}
