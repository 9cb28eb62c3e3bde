package stats

import "sort"

// AdvanceBucketSet
//
// 用來把步數定位到分布區間。區間為 [0,10), [10,100), ..., [1000000,+inf)
type AdvanceBucketSet struct {
	bounds []uint32
	labels []string
}

// AdvanceBuckets 為報告使用的預設區間，請勿修改。
var AdvanceBuckets = &AdvanceBucketSet{
	bounds: []uint32{10, 100, 1000, 10000, 100000, 1000000},
	labels: []string{"[0,10)", "[10,100)", "[100,1000)", "[1000,10000)", "[10000,100000)", "[100000,1000000)", "[1000000,+inf)"},
}

func (b *AdvanceBucketSet) Labels() []string {
	return append([]string(nil), b.labels...)
}

// Index 回傳步數所在區間。
func (b *AdvanceBucketSet) Index(adv uint32) int {
	return sort.Search(len(b.bounds), func(i int) bool { return adv < b.bounds[i] })
}
