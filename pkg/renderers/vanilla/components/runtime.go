package components

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-jsonfields/pkg/selector"
)

// RuntimeScript returns the browser behaviour for sel: once the DOM is ready,
// every matching control re-renders its value as two-space indented JSON on
// change, and keeps the typed text when it does not parse.
func RuntimeScript(sel selector.Selector) string {
	css, err := json.Marshal(sel.CSS())
	if err != nil {
		css = []byte(`""`)
	}
	return fmt.Sprintf(runtimeScript, css)
}

const runtimeScript = `(function () {
  var SELECTOR = %s;

  function format(field) {
    try {
      field.value = JSON.stringify(JSON.parse(field.value), null, 2);
    } catch (e) {
      // keep the value as typed
    }
  }

  document.addEventListener("DOMContentLoaded", function () {
    document.querySelectorAll(SELECTOR).forEach(function (field) {
      field.addEventListener("change", function () {
        format(field);
      });
    });
  });
})();`
