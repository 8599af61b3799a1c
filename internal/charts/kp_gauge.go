package charts

import (
	"encoding/json"
	"fmt"

	"github.com/GaiaEyesHQ/gaiaeyes-widgets/internal/scales"
)

// KpGaugeSnippet builds an ECharts gauge for the planetary Kp index.
// A stale reading renders the absent state ("Kp —") with the needle parked
// at zero, never a live-looking value.
func KpGaugeSnippet(kp float64, stale bool) (Snippet, error) {
	id := "ge-gauge-kp"

	value := kp
	detail := fmt.Sprintf("Kp %.1f\n%s", kp, scales.GLabel(scales.GScale(kp)))
	if stale {
		value = 0
		detail = "Kp —"
	}

	option := map[string]interface{}{
		"series": []interface{}{
			map[string]interface{}{
				"name":        "Kp index",
				"type":        "gauge",
				"min":         0,
				"max":         9,
				"splitNumber": 9,
				"radius":      "80%",
				"axisLine": map[string]interface{}{
					"lineStyle": map[string]interface{}{
						"width": 18,
						"color": [][]interface{}{
							{float64(2) / 9, scales.ToneColor("quiet")},
							{float64(3) / 9, scales.ToneColor("unsettled")},
							{float64(4) / 9, scales.ToneColor("active")},
							{1.0, scales.ToneColor("storm")},
						},
					},
				},
				"pointer": map[string]interface{}{
					"itemStyle": map[string]interface{}{"color": "auto"},
				},
				"axisLabel": map[string]interface{}{
					"color":    "inherit",
					"fontSize": 12,
					"distance": 28,
				},
				"detail": map[string]interface{}{
					"valueAnimation": true,
					"formatter":      detail,
					"color":          "inherit",
					"fontSize":       14,
					"fontWeight":     "bold",
					"offsetCenter":   []interface{}{0, "60%"},
				},
				"data": []interface{}{
					map[string]interface{}{"value": value, "name": "Kp"},
				},
			},
		},
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return Snippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:250px;\"></div>", id)
	// Reuse a chart instance already bound to the container so repeated
	// fragment swaps never stack a second instance on the same div.
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.getInstanceByDom(el)||echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
<div class="ge-gauge-item">
	%s
</div>
%s`, div, script)

	return Snippet{ID: id, Title: "Kp Index Gauge", Div: div, Script: script, HTML: completeHTML}, nil
}
