package naver_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"etfboard/internal/naver"
)

func TestDailyRemapsAndDeduplicates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := NewMockDoer(ctrl)

	doer.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *http.Request) (*http.Response, error) {
			require.Contains(t, req.URL.Path, "/069500")
			require.Equal(t, "month", req.URL.Query().Get("periodType"))
			require.Equal(t, "100", req.URL.Query().Get("count"))
			require.Equal(t, "https://fin.naver.com/", req.Header.Get("Referer"))

			// 20250603 appears twice: once from the monthly scheme and
			// once from the intraday scheme truncated to the same date.
			return jsonResponse(http.StatusOK, `{
                "priceInfos": [
                    {"localDate": "20250604", "openPrice": 81700, "highPrice": 82100, "lowPrice": 81500, "closePrice": 81900, "accumulatedTradingVolume": 5230000},
                    {"localDate": "20250603", "openPrice": 81200, "highPrice": 81800, "lowPrice": 81000, "closePrice": 81650, "accumulatedTradingVolume": 4890000},
                    {"localDateTime": "202506031530", "openPrice": 81210, "highPrice": 81810, "lowPrice": 81010, "currentPrice": 81660, "accumulatedTradingVolume": 4891000},
                    {"openPrice": 1, "closePrice": 1}
                ]
            }`), nil
		}).
		Times(1)

	c := naver.New(naver.Config{}, doer)
	candles, err := c.Daily(context.Background(), "069500")
	require.NoError(t, err)

	// dateless record dropped, duplicate date collapsed, ascending order
	require.Len(t, candles, 2)
	require.Equal(t, "2025-06-03", candles[0].Time)
	require.Equal(t, "2025-06-04", candles[1].Time)

	// the later (intraday) record won the duplicate date, and its
	// currentPrice filled the close
	require.Equal(t, 81660.0, candles[0].Close)
	require.Equal(t, int64(4891000), candles[0].Volume)

	require.Equal(t, 81900.0, candles[1].Close)
	require.Equal(t, 81700.0, candles[1].Open)
}

func TestDailyUpstreamFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := NewMockDoer(ctrl)

	doer.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(jsonResponse(http.StatusBadGateway, "upstream sad"), nil).
		Times(1)

	c := naver.New(naver.Config{}, doer)
	_, err := c.Daily(context.Background(), "069500")
	require.Error(t, err)
}

func TestDailyEmptySeries(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := NewMockDoer(ctrl)

	doer.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(jsonResponse(http.StatusOK, `{"priceInfos": []}`), nil).
		Times(1)

	c := naver.New(naver.Config{}, doer)
	candles, err := c.Daily(context.Background(), "069500")
	require.NoError(t, err)
	require.Empty(t, candles)
}
