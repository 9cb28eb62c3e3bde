// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// PointStat 點估計 回傳 估計值 以及信賴區間
type PointStat struct {
	Hat float64 `json:"Hat" yaml:"hat"`
	CI  CI      `json:"CI"  yaml:"ci"`
}

// Proportion 回傳 k/n 的點估計與 Clopper-Pearson 信賴區間。
func Proportion(k, n uint64, confidence float64) PointStat {
	hat, ci := proportionCICP(k, n, confidence)
	return PointStat{Hat: hat, CI: ci}
}

// ExpectedHits 回傳以命中率 p 掃描 n 個 seed 時預期的命中數與 95% CI（Poisson 近似）。
func ExpectedHits(p float64, n uint64) PointStat {
	lambda := p * float64(n)
	if lambda <= 0 {
		return PointStat{}
	}
	d := distuv.Poisson{Lambda: lambda}
	return PointStat{Hat: lambda, CI: CI{Lo: poissonQuantile(d, 0.025), Hi: poissonQuantile(d, 0.975)}}
}

// ============================================================
// ** 內部統計函數 **
// ============================================================

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k, n uint64, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	// Beta PPF 映射，處理邊界
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

// poissonQuantile 回傳最小的 x 使 CDF(x) >= q。
func poissonQuantile(d distuv.Poisson, q float64) float64 {
	// 從平均值往下 10 個標準差開始找
	x := math.Max(0, math.Floor(d.Lambda-10*math.Sqrt(d.Lambda)))
	for d.CDF(x) < q {
		x++
	}
	return x
}
