// Copyright © 2022 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
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

package chaintypes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
)

const timestampLayout = "2006-01-02T15:04:05.999999"

// blockTimestampEpochMillis is the Y2K epoch (2000-01-01T00:00:00Z) that
// block_timestamp slots are measured from, in Unix milliseconds.
const blockTimestampEpochMillis = 946684800000

const blockTimestampIntervalMillis = 500

// TimePoint is a UTC instant stored as microseconds since the Unix epoch.
type TimePoint uint64

// TimePointSec is a UTC instant stored as seconds since the Unix epoch.
type TimePointSec uint32

// BlockTimestamp is a UTC instant stored as a count of 500ms slots since
// the Y2K epoch.
type BlockTimestamp uint32

func parseUTC(ctx context.Context, desc, s string) (time.Time, error) {
	str := strings.TrimSuffix(s, "Z")
	t, err := time.Parse(timestampLayout, str)
	if err != nil {
		return time.Time{}, i18n.NewError(ctx, abimsgs.MsgInvalidTimestamp, desc, s, err.Error())
	}
	return t.UTC(), nil
}

func ParseTimePoint(ctx context.Context, s string) (TimePoint, error) {
	t, err := parseUTC(ctx, "time_point", s)
	if err != nil {
		return 0, err
	}
	return TimePoint(uint64(t.Unix())*1000000 + uint64(t.Nanosecond())/1000), nil
}

func (t TimePoint) Time() time.Time {
	micros := int64(t)
	return time.Unix(micros/1000000, (micros%1000000)*1000).UTC()
}

func (t TimePoint) String() string {
	tm := t.Time()
	micros := tm.Nanosecond() / 1000
	if micros == 0 {
		return tm.Format("2006-01-02T15:04:05") + ".000"
	}
	return fmt.Sprintf("%s.%06d", tm.Format("2006-01-02T15:04:05"), micros)
}

func ParseTimePointSec(ctx context.Context, s string) (TimePointSec, error) {
	t, err := parseUTC(ctx, "time_point_sec", s)
	if err != nil {
		return 0, err
	}
	return TimePointSec(uint32(t.Unix())), nil
}

func (t TimePointSec) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t TimePointSec) String() string {
	return t.Time().Format("2006-01-02T15:04:05") + ".000"
}

func ParseBlockTimestamp(ctx context.Context, s string) (BlockTimestamp, error) {
	t, err := parseUTC(ctx, "block_timestamp_type", s)
	if err != nil {
		return 0, err
	}
	millis := t.Unix()*1000 + int64(t.Nanosecond())/1000000
	slot := (millis - blockTimestampEpochMillis) / blockTimestampIntervalMillis
	return BlockTimestamp(uint32(slot)), nil
}

func (b BlockTimestamp) Time() time.Time {
	millis := int64(b)*blockTimestampIntervalMillis + blockTimestampEpochMillis
	return time.UnixMilli(millis).UTC()
}

func (b BlockTimestamp) String() string {
	return b.Time().Format("2006-01-02T15:04:05") + ".000"
}
