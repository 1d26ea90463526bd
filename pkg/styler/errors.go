package styler

import stderrors "errors"

var errNotSnapshotter = stderrors.New("surface does not support snapshots")
