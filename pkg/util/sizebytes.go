// Copyright 2019 Tad Lebeck
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package util

import (
	"fmt"

	"github.com/alecthomas/units"
)

// Constants describing Bytes in Multiples
const (
	BytesInKiB = 1024
	BytesInMiB = 1048576
	BytesInGiB = 1073741824
)

// sizeSuffix pairs a multiplier with the suffix Kubernetes quantities use for it.
// Binary multipliers precede their decimal neighbours so exact binary sizes read as Gi, not G.
type sizeSuffix struct {
	multiplier int64
	suffix     string
}

var k8sSizeSuffixes = []sizeSuffix{
	{int64(units.PiB), "Pi"},
	{int64(units.PB), "P"},
	{int64(units.TiB), "Ti"},
	{int64(units.TB), "T"},
	{int64(units.GiB), "Gi"},
	{int64(units.GB), "G"},
	{int64(units.MiB), "Mi"},
	{int64(units.MB), "M"},
	{int64(units.KiB), "Ki"},
	{int64(units.KB), "k"},
}

// K8sQuantityString renders a byte count as a Kubernetes quantity string using the largest
// suffix that divides it exactly, e.g. 10737418240 is "10Gi" and 5000000 is "5M".
func K8sQuantityString(size int64) string {
	sign := ""
	if size < 0 {
		sign = "-"
		size = -size
	}
	for _, s := range k8sSizeSuffixes {
		if size >= s.multiplier && size%s.multiplier == 0 {
			return fmt.Sprintf("%s%d%s", sign, size/s.multiplier, s.suffix)
		}
	}
	return fmt.Sprintf("%s%d", sign, size)
}

// K8sSizeBytes can print its value as a Kubernetes quantity
type K8sSizeBytes int64

func (ksz K8sSizeBytes) String() string {
	return K8sQuantityString(int64(ksz))
}
