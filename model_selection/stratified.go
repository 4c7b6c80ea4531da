package model_selection

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// StratifiedTrainTestSplit は各クラスの比率を保ったまま分割します。
// ターゲットは Text または Int で、欠損を含まず、2クラス以上かつ各クラス2行以上が必要です。
func StratifiedTrainTestSplit(ds *frame.Dataset, target string, testFraction float64, seed int64) (*Split, error) {
	nTest, err := validate(ds, "model_selection.StratifiedTrainTestSplit", target, testFraction)
	if err != nil {
		return nil, err
	}
	classes, err := groupClasses(ds, target)
	if err != nil {
		return nil, err
	}
	n := ds.NRows()
	if nTest < len(classes) || n-nTest < len(classes) {
		return nil, errors.NewStratificationError(target,
			"both splits must be able to hold one row of every class")
	}

	r := newRand(seed)
	quotas := allocate(classes, n, nTest)
	var train, test []int
	for i, c := range classes {
		members := append([]int(nil), c.positions...)
		r.Shuffle(len(members), func(a, b int) {
			members[a], members[b] = members[b], members[a]
		})
		test = append(test, members[:quotas[i]]...)
		train = append(train, members[quotas[i]:]...)
	}
	r.Shuffle(len(train), func(a, b int) { train[a], train[b] = train[b], train[a] })
	r.Shuffle(len(test), func(a, b int) { test[a], test[b] = test[b], test[a] })

	split, err := build(ds, target, train, test)
	if err != nil {
		return nil, err
	}
	logSplit("stratified", split, testFraction, seed)
	return split, nil
}

type class struct {
	key       string
	positions []int
}

// groupClasses returns the row positions of every class, ordered by key.
func groupClasses(ds *frame.Dataset, target string) ([]class, error) {
	c, err := ds.Column(target)
	if err != nil {
		return nil, err
	}
	if c.Kind() == frame.KindFloat {
		return nil, errors.NewStratificationError(target, "continuous target cannot be stratified")
	}
	byKey := make(map[string]*class)
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			return nil, errors.NewStratificationError(target, "target contains missing values")
		}
		key := c.Value(i).String()
		if byKey[key] == nil {
			byKey[key] = &class{key: key}
		}
		byKey[key].positions = append(byKey[key].positions, i)
	}
	if len(byKey) < 2 {
		return nil, errors.NewStratificationError(target, "at least two classes are required")
	}
	classes := make([]class, 0, len(byKey))
	for _, c := range byKey {
		if len(c.positions) < 2 {
			return nil, errors.NewStratificationError(target, "class "+c.key+" has fewer than two members")
		}
		classes = append(classes, *c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].key < classes[j].key })
	return classes, nil
}

// allocate distributes nTest rows over classes by largest remainder.
// Every class keeps at least one row on each side.
func allocate(classes []class, n, nTest int) []int {
	quotas := make([]int, len(classes))
	remainders := make([]float64, len(classes))
	assigned := 0
	for i, c := range classes {
		exact := float64(len(c.positions)) * float64(nTest) / float64(n)
		q := int(math.Floor(exact))
		q = max(1, min(q, len(c.positions)-1))
		quotas[i] = q
		remainders[i] = exact - float64(q)
		assigned += q
	}

	order := make([]int, len(classes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return remainders[order[a]] > remainders[order[b]] })

	for assigned < nTest {
		progressed := false
		for _, i := range order {
			if assigned == nTest {
				break
			}
			if quotas[i] < len(classes[i].positions)-1 {
				quotas[i]++
				assigned++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	for assigned > nTest {
		progressed := false
		for k := len(order) - 1; k >= 0 && assigned > nTest; k-- {
			i := order[k]
			if quotas[i] > 1 {
				quotas[i]--
				assigned--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return quotas
}
