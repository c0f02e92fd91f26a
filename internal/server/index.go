package server

// indexHTML is the built-in explorer page: it draws the current dungeon on a
// canvas, lists room contents, and refreshes over the websocket feed.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>delvegen explorer</title>
<style>
  body { font-family: monospace; background: #14151a; color: #d8d8d8; margin: 1.5rem; }
  h1 { font-size: 1.1rem; }
  button { font-family: inherit; background: #2a2c36; color: #d8d8d8; border: 1px solid #555; padding: 0.3rem 0.8rem; cursor: pointer; }
  button:hover { background: #3a3d4a; }
  #meta { margin: 0.6rem 0; color: #9a9a9a; }
  #map { background: #0c0d10; border: 1px solid #333; margin-top: 0.5rem; }
  #rooms { margin-top: 0.8rem; max-height: 18rem; overflow-y: auto; font-size: 0.85rem; }
  .room { margin-bottom: 0.4rem; }
  .entity { color: #8fb573; margin-left: 1rem; }
  .monster { color: #c06a6a; }
</style>
</head>
<body>
<h1>delvegen explorer</h1>
<div>
  <button id="regen">Regenerate</button>
  <input id="seed" placeholder="seed (optional)" style="background:#2a2c36;color:#d8d8d8;border:1px solid #555;padding:0.3rem;">
</div>
<div id="meta">no dungeon yet</div>
<canvas id="map" width="640" height="480"></canvas>
<div id="rooms"></div>
<script>
const cell = 24;
const canvas = document.getElementById("map");
const ctx = canvas.getContext("2d");

function render(result) {
  const d = result.candidate.dungeon;
  const rooms = Object.values(d.rooms);
  const xs = rooms.map(r => r.position.x), ys = rooms.map(r => r.position.y);
  const minX = Math.min(...xs), minY = Math.min(...ys);
  const w = (Math.max(...xs) - minX + 2) * cell, h = (Math.max(...ys) - minY + 2) * cell;
  canvas.width = Math.max(w, 320); canvas.height = Math.max(h, 240);
  ctx.clearRect(0, 0, canvas.width, canvas.height);

  const px = r => (r.position.x - minX + 0.5) * cell + cell / 2;
  const py = r => canvas.height - ((r.position.y - minY + 0.5) * cell + cell / 2);

  ctx.strokeStyle = "#555";
  for (const [from, neighbors] of Object.entries(d.adjacency)) {
    for (const to of neighbors) {
      if (Number(from) < to) {
        ctx.beginPath();
        ctx.moveTo(px(d.rooms[from]), py(d.rooms[from]));
        ctx.lineTo(px(d.rooms[to]), py(d.rooms[to]));
        ctx.stroke();
      }
    }
  }
  for (const r of rooms) {
    ctx.fillStyle = r.id === 0 ? "#d8b44a" : (r.monsters && r.monsters.length ? "#c06a6a" : "#6a90c0");
    ctx.fillRect(px(r) - 7, py(r) - 7, 14, 14);
    ctx.fillStyle = "#0c0d10";
    ctx.fillText(r.symbol, px(r) - 3, py(r) + 4);
  }

  const m = result.candidate.metrics;
  document.getElementById("meta").textContent =
    "seed " + result.master_seed + " | score " + result.candidate.score.toFixed(3) +
    " | rooms " + m.room_count + " | dead ends " + (m.dead_end_ratio * 100).toFixed(0) + "%";

  const list = document.getElementById("rooms");
  list.innerHTML = "";
  for (const r of rooms) {
    const div = document.createElement("div");
    div.className = "room";
    div.textContent = "#" + r.id + " " + r.label + (r.description ? " - " + r.description : "");
    for (const it of r.items || []) {
      const e = document.createElement("div");
      e.className = "entity";
      e.textContent = it.quantity + "x " + it.label;
      div.appendChild(e);
    }
    for (const mo of r.monsters || []) {
      const e = document.createElement("div");
      e.className = "entity monster";
      e.textContent = mo.quantity + "x " + mo.label;
      div.appendChild(e);
    }
    list.appendChild(div);
  }
}

async function load() {
  const resp = await fetch("/api/dungeon");
  if (resp.ok) render(await resp.json());
}

document.getElementById("regen").onclick = async () => {
  const seed = document.getElementById("seed").value.trim();
  const url = seed ? "/api/regenerate?seed=" + encodeURIComponent(seed) : "/api/regenerate";
  const resp = await fetch(url, { method: "POST" });
  if (resp.ok) render(await resp.json());
};

const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = ev => render(JSON.parse(ev.data));

load();
</script>
</body>
</html>
`
